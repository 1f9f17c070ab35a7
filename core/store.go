package core

import "context"

// Store 是存储的领域接口，由 store 包实现（MemoryStore / RedisStore）。
//
// 引擎本身不持久化任何状态；Store 只被 catalog 用来读写候选集快照，
// 即外部协作者交给引擎的那份一致性数据。
type Store interface {
	Name() string // memory / redis，写入错误信息

	// Get 在 key 不存在或已过期时返回 ErrStoreNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Set 的 ttl 单位为秒，省略或 <= 0 表示不过期
	Set(ctx context.Context, key string, value []byte, ttl ...int) error
	Delete(ctx context.Context, key string) error

	// BatchGet 批量读取，不存在的 key 不出现在结果中
	BatchGet(ctx context.Context, keys []string) (map[string][]byte, error)

	Close() error
}

// ErrStoreNotFound 表示 key 不存在
var ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")

// IsStoreNotFound 判断错误是否来自 Store 的 key 不存在。
// 只匹配 store 模块，catalog 包装后的 NOT_FOUND 不算。
func IsStoreNotFound(err error) bool {
	de := GetDomainError(err)
	return de != nil && de.Module == ModuleStore && de.Code == ErrorCodeNotFound
}
