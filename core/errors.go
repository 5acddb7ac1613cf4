package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 错误分层：
//   - INVALID_INPUT 是唯一会向调用方透出的错误（权重不归一、画像数值越界等）
//   - SOURCE_UNAVAILABLE / INVALID_UPSTREAM / CONFIG_MISSING 均在本层内部
//     通过降级路径吸收，调用方只会看到一个置信度更低的结果
type DomainError struct {
	Code    string // 错误代码（如 "INVALID_INPUT", "SOURCE_UNAVAILABLE"）
	Message string // 错误消息
	Module  string // 模块名称（如 "trend", "weights", "compose"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// 错误代码常量
const (
	ErrorCodeNotFound          = "NOT_FOUND"          // 资源不存在
	ErrorCodeNotSupported      = "NOT_SUPPORTED"      // 操作不支持
	ErrorCodeSourceUnavailable = "SOURCE_UNAVAILABLE" // 单个外部源失败/超时（内部降级，不透出）
	ErrorCodeInvalidUpstream   = "INVALID_UPSTREAM"   // 上游响应格式不合法（内部降级，不透出）
	ErrorCodeConfigMissing     = "CONFIG_MISSING"     // 缺少凭证/配置，该源视为进程内永久不可用
	ErrorCodeInvalidInput      = "INVALID_INPUT"      // 调用方输入无效（会透出）
	ErrorCodeInternalError     = "INTERNAL_ERROR"     // 内部错误
)

// 模块名称常量
const (
	ModuleStore      = "store"      // 存储模块
	ModuleTrend      = "trend"      // 趋势聚合模块
	ModuleSimilarity = "similarity" // 人群相似度模块
	ModuleWeights    = "weights"    // 算法权重模块
	ModuleCompose    = "compose"    // 推荐合成模块
	ModuleService    = "service"    // 外部服务模块
	ModuleTrack      = "track"      // 用量上报模块
)

// 通用错误检查函数

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsInvalidInput 检查错误是否为 INVALID_INPUT（调用方可据此返回 4xx 类响应）
func IsInvalidInput(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidInput
	}
	return false
}

// IsSourceUnavailable 检查错误是否为 SOURCE_UNAVAILABLE
func IsSourceUnavailable(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeSourceUnavailable
	}
	return false
}

// IsInvalidUpstream 检查错误是否为 INVALID_UPSTREAM
func IsInvalidUpstream(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidUpstream
	}
	return false
}

// IsConfigMissing 检查错误是否为 CONFIG_MISSING
func IsConfigMissing(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeConfigMissing
	}
	return false
}
