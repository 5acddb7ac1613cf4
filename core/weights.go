package core

import (
	"fmt"
	"math"
	"time"
)

// WeightSumTolerance 是权重归一化校验的容差。
const WeightSumTolerance = 1e-6

// AlgorithmWeights 是融合各路信号的混合系数。
//
// 四个分量必须归一（和为 1，容差 1e-6）。只能通过 weights.Store.SetWeights
// 这一条管理路径修改，修改记录由 UpdatedBy + UpdatedAt 版本化。
type AlgorithmWeights struct {
	SocialWeight     float64 `json:"social_weight"`     // 社交/口碑信号
	PersonalWeight   float64 `json:"personal_weight"`   // 个人偏好信号
	ContextualWeight float64 `json:"contextual_weight"` // 场景信号（时间/天气/位置）
	TrendsWeight     float64 `json:"trends_weight"`     // 趋势热度信号

	UpdatedBy string    `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// DefaultAlgorithmWeights 返回首次使用时的种子权重。
func DefaultAlgorithmWeights() AlgorithmWeights {
	return AlgorithmWeights{
		SocialWeight:     0.4,
		PersonalWeight:   0.35,
		ContextualWeight: 0.15,
		TrendsWeight:     0.1,
	}
}

// Sum 返回四个分量之和。
func (w AlgorithmWeights) Sum() float64 {
	return w.SocialWeight + w.PersonalWeight + w.ContextualWeight + w.TrendsWeight
}

// Validate 校验归一化约束，不满足时返回 INVALID_INPUT。
func (w AlgorithmWeights) Validate() error {
	for name, v := range map[string]float64{
		"social_weight":     w.SocialWeight,
		"personal_weight":   w.PersonalWeight,
		"contextual_weight": w.ContextualWeight,
		"trends_weight":     w.TrendsWeight,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return NewDomainError(ModuleWeights, ErrorCodeInvalidInput,
				fmt.Sprintf("weights: %s must be a finite non-negative number", name))
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > WeightSumTolerance {
		return NewDomainError(ModuleWeights, ErrorCodeInvalidInput,
			fmt.Sprintf("weights: components must sum to 1.0, got %.9f", sum))
	}
	return nil
}
