package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Profile 错误：INVALID_PROFILE
//   - 引用错误：UNKNOWN_REFERENCE（点击的基金不存在、持仓股票不存在）
//   - 数值错误：MALFORMED_NUMERIC（保费文本无法解析等）
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "UNKNOWN_REFERENCE"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "feature", "recall"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is 按 Module + Code 比较，便于 errors.Is(err, ErrStoreNotFound) 这类写法。
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Module == t.Module && e.Code == t.Code
}

// IsDomainError 检查错误链中是否存在 DomainError
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取错误链中的 DomainError，如果不存在则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound         = "NOT_FOUND"         // 资源不存在
	ErrorCodeNotSupported     = "NOT_SUPPORTED"     // 操作不支持
	ErrorCodeInvalidInput     = "INVALID_INPUT"     // 输入无效
	ErrorCodeInvalidProfile   = "INVALID_PROFILE"   // 用户画像缺少无法降级的字段
	ErrorCodeUnknownReference = "UNKNOWN_REFERENCE" // 引用的物品不在候选集中
	ErrorCodeMalformedNumeric = "MALFORMED_NUMERIC" // 数值字段无法解析
)

// 模块名称常量
const (
	ModuleStore     = "store"
	ModuleFeature   = "feature"
	ModuleRecall    = "recall"
	ModuleCatalog   = "catalog"
	ModuleRebalance = "rebalance"
	ModuleDiagnosis = "diagnosis"
	ModuleConfig    = "config"
	ModuleProfile   = "profile"
)

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool { return hasCode(err, ErrorCodeNotSupported) }

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool { return hasCode(err, ErrorCodeInvalidInput) }

// IsUnknownReference 检查错误是否为 UNKNOWN_REFERENCE。
// 这类错误只用于日志与观测，召回策略遇到时直接跳过。
func IsUnknownReference(err error) bool { return hasCode(err, ErrorCodeUnknownReference) }

// IsMalformedNumeric 检查错误是否为 MALFORMED_NUMERIC
func IsMalformedNumeric(err error) bool { return hasCode(err, ErrorCodeMalformedNumeric) }
