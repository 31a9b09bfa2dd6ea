package graph

import (
	"context"
	"sort"
)

// DefaultMaxDepth 先修链默认深度上限
const DefaultMaxDepth = 5

// ChainGraph 以单个模块为根的先修链图
type ChainGraph struct {
	Root     string
	MaxDepth int
	*Graph
	// Unresolved 被已输出节点声明为先修、但自身未成为节点的模块代码：
	// 存储中不存在，或超出深度上限被截断。按字典序去重。
	Unresolved []string
	// Lookups 本次解析发起的存储查询次数
	Lookups int
}

type frame struct {
	code  string
	depth int
}

type declaredEdge struct {
	source string // 先修模块
	target string // 声明该先修的模块
}

// PrerequisiteChain 从 moduleCode 出发沿先修关系向外做深度优先展开
//
// 使用显式栈 + visited 集合：已访问的代码或深度超过 maxDepth 的帧直接跳过，
// 保证在环形或自引用数据上终止，且每个不同模块最多查询一次。
// 模块的 depth 记录首次访问时的深度，不取多条路径中的最小值。
// maxDepth < 0 时使用 DefaultMaxDepth；超过上限时静默截断而非报错。
//
// 每个被展开的模块都会为其声明的全部先修生成一条边；解析结束后，
// 端点未成为节点的边被剔除，对应代码记入 Unresolved。
func (b *Builder) PrerequisiteChain(ctx context.Context, moduleCode string, maxDepth int) (*ChainGraph, error) {
	if maxDepth < 0 {
		maxDepth = DefaultMaxDepth
	}

	g := New()
	visited := make(map[string]struct{})
	var declared []declaredEdge
	lookups := 0

	stack := []frame{{code: moduleCode, depth: 0}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[f.code]; seen || f.depth > maxDepth {
			continue
		}
		visited[f.code] = struct{}{}

		m, err := b.store.FindModuleByCode(ctx, f.code)
		lookups++
		if err != nil {
			return nil, err
		}
		if m == nil {
			if f.depth == 0 {
				return nil, &NotFoundError{Kind: KindModule, Code: moduleCode}
			}
			continue
		}

		depth := f.depth
		g.AddNode(ModuleNode(m, &depth))

		for _, prereq := range m.Prerequisites {
			if prereq == "" {
				continue
			}
			declared = append(declared, declaredEdge{source: prereq, target: m.ModuleCode})
		}
		// 逆序入栈，使出栈顺序与递归展开的先序顺序一致
		for i := len(m.Prerequisites) - 1; i >= 0; i-- {
			if code := m.Prerequisites[i]; code != "" {
				stack = append(stack, frame{code: code, depth: depth + 1})
			}
		}
	}

	unresolved := make(map[string]struct{})
	for _, e := range declared {
		if !g.HasNode(e.source) {
			unresolved[e.source] = struct{}{}
			continue
		}
		g.AddEdge(e.source, e.target, EdgePrerequisite)
	}

	codes := make([]string, 0, len(unresolved))
	for code := range unresolved {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return &ChainGraph{
		Root:       moduleCode,
		MaxDepth:   maxDepth,
		Graph:      g,
		Unresolved: codes,
		Lookups:    lookups,
	}, nil
}
