package shoe

import "context"

// 存储后端名称
const (
	BackendFile = "file"
	BackendBlob = "blob"
	BackendSQL  = "sql"
)

// LoadResult 一次加载的结果
// Skipped记录被跳过的坏记录，加载本身仍然成功
type LoadResult struct {
	Shoes   Collection
	Skipped []SkippedRecord
}

// Repository 库存仓储接口
// 设计说明：
// 1. 接口定义在domain层，三种后端（file/blob/sql）在infrastructure层实现
// 2. Save是整体替换：存储内容与传入集合完全一致
// 3. 加载失败时返回nil结果，调用方持有的集合保持不变
type Repository interface {
	// Load 读取全部记录，保持存储顺序
	Load(ctx context.Context) (*LoadResult, error)

	// Save 用传入集合替换存储中的全部记录
	// SQL后端遇到重复Code返回ErrDuplicateCode，且不提交任何修改
	Save(ctx context.Context, shoes Collection) error

	// Backend 后端名称，用于日志和指标标签
	Backend() string
}
