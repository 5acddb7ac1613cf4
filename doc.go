// Package dinekit 是一个餐厅推荐核心工具包（Dining Recommender Kit）。
//
// 设计要点：
// - Settle-all 聚合: 趋势信号多源并发拉取，单源失败不拖垮整体，全部失败回退确定性兜底
// - Degrade-first: AI 建议不可用时按评分排序兜底，调用方永远拿到可用的推荐列表
// - Labels-first: 推荐结果携带标签（排序器来源、混合得分），支持 explain / 观测
package dinekit

import (
	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/trend"
)

// 轻量 facade：便于用户直接 import "dinekit" 使用核心抽象。
type TrendSignal = core.TrendSignal
type TrendRequest = core.TrendRequest
type Candidate = core.Candidate
type Recommendation = core.Recommendation
type DemographicProfile = core.DemographicProfile
type AlgorithmWeights = core.AlgorithmWeights

const (
	TrendRising  = core.TrendRising
	TrendStable  = core.TrendStable
	TrendFalling = core.TrendFalling
)

// Source 是趋势信号源抽象，自定义信号源即可插拔扩展。
type Source = trend.Source
