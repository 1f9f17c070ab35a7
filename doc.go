// Package finreckit 是一个金融产品推荐与资产再平衡引擎。
//
// 设计要点：
// - Pipeline-first: 每个资产大类的推荐都是 Node 链（策略召回 → 合并去重 → 过滤 → 截断）
// - Labels-first: 召回来源、被跳过的策略等通过 labels 全链路透传，便于解释与观测
// - 无状态: 特征编码与打分都是纯函数，同一输入与随机种子得到同一输出
package finreckit

import (
	"github.com/rushteam/finreckit/core"
	"github.com/rushteam/finreckit/engine"
	"github.com/rushteam/finreckit/pipeline"
)

// 轻量 facade：便于直接 import "finreckit" 使用核心抽象。
type (
	Engine      = engine.Engine
	Item        = core.Item
	UserProfile = core.UserProfile
	Catalog     = core.Catalog
	Pipeline    = pipeline.Pipeline
	Node        = pipeline.Node
)

// NewEngine 等同于 engine.New。
var NewEngine = engine.New
