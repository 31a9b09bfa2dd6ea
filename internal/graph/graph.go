// Package graph 将课程/模块记录解析为有向依赖图。
//
// Graph 自身维护两条不变式：同一张图内节点 ID 唯一；边的两个端点必须都是本图节点。
// 两个解析器（CourseGraph、PrerequisiteChain）只读访问 Store，调用之间不共享可变状态。
package graph

import (
	"fmt"
	"strings"
)

// NodeType 节点类型
type NodeType string

const (
	NodeCourse NodeType = "course"
	NodeModule NodeType = "module"
)

// EdgeType 边类型
type EdgeType string

const (
	EdgeCore         EdgeType = "core"         // 课程 → 核心模块
	EdgeOptional     EdgeType = "optional"     // 课程 → 选修模块
	EdgePrerequisite EdgeType = "prerequisite" // 先修模块 → 后续模块
)

// Node 图节点
type Node struct {
	ID    string      `json:"id"`
	Label string      `json:"label"`
	Type  NodeType    `json:"type"`
	Depth *int        `json:"depth,omitempty"`
	Data  interface{} `json:"data"`
}

// Edge 有向边
type Edge struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type"`
}

// edgeIDEscaper 各段中的 "%" 与 "-" 转义后再以 "-" 拼接，含连字符的代码不会拼出相同 ID
var edgeIDEscaper = strings.NewReplacer("%", "%25", "-", "%2D")

// EdgeID 由 (source, target, type) 确定性生成边 ID，重复构建结果一致
// 不含 "-" 与 "%" 的代码保持 source-target-type 原样
func EdgeID(source, target string, typ EdgeType) string {
	return edgeIDEscaper.Replace(source) + "-" + edgeIDEscaper.Replace(target) + "-" + edgeIDEscaper.Replace(string(typ))
}

// edgeKey 边的去重键
type edgeKey struct {
	source string
	target string
	typ    EdgeType
}

// Graph 节点/边集合，按插入顺序输出
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	nodeIndex map[string]int
	edgeIndex map[edgeKey]struct{}
}

// New 创建空图
func New() *Graph {
	return &Graph{
		Nodes:     make([]Node, 0),
		Edges:     make([]Edge, 0),
		nodeIndex: make(map[string]int),
		edgeIndex: make(map[edgeKey]struct{}),
	}
}

func (g *Graph) ensureIndex() {
	if g.nodeIndex == nil {
		g.nodeIndex = make(map[string]int, len(g.Nodes))
		for i, n := range g.Nodes {
			g.nodeIndex[n.ID] = i
		}
	}
	if g.edgeIndex == nil {
		g.edgeIndex = make(map[edgeKey]struct{}, len(g.Edges))
		for _, e := range g.Edges {
			g.edgeIndex[edgeKey{e.Source, e.Target, e.Type}] = struct{}{}
		}
	}
}

// AddNode 添加节点；ID 已存在时保留先加入的节点并返回 false
func (g *Graph) AddNode(n Node) bool {
	g.ensureIndex()
	if _, ok := g.nodeIndex[n.ID]; ok {
		return false
	}
	g.nodeIndex[n.ID] = len(g.Nodes)
	g.Nodes = append(g.Nodes, n)
	return true
}

// HasNode 节点是否存在
func (g *Graph) HasNode(id string) bool {
	g.ensureIndex()
	_, ok := g.nodeIndex[id]
	return ok
}

// Node 按 ID 查找节点
func (g *Graph) Node(id string) (Node, bool) {
	g.ensureIndex()
	i, ok := g.nodeIndex[id]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// AddEdge 添加边。任一端点不在图中，或同一 (source, target, type) 已存在时返回 false。
func (g *Graph) AddEdge(source, target string, typ EdgeType) bool {
	g.ensureIndex()
	if !g.HasNode(source) || !g.HasNode(target) {
		return false
	}
	key := edgeKey{source, target, typ}
	if _, ok := g.edgeIndex[key]; ok {
		return false
	}
	g.edgeIndex[key] = struct{}{}
	g.Edges = append(g.Edges, Edge{ID: EdgeID(source, target, typ), Source: source, Target: target, Type: typ})
	return true
}

// EdgesOfType 返回指定类型的边
func (g *Graph) EdgesOfType(typ EdgeType) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

// Validate 检查不变式，供反序列化后的图或测试使用
func (g *Graph) Validate() error {
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, dup := ids[n.ID]; dup {
			return fmt.Errorf("节点 ID 重复: %s", n.ID)
		}
		ids[n.ID] = struct{}{}
	}
	edges := make(map[edgeKey]struct{}, len(g.Edges))
	edgeIDs := make(map[string]struct{}, len(g.Edges))
	for _, e := range g.Edges {
		if _, ok := ids[e.Source]; !ok {
			return fmt.Errorf("边 %s 的起点 %s 不在图中", e.ID, e.Source)
		}
		if _, ok := ids[e.Target]; !ok {
			return fmt.Errorf("边 %s 的终点 %s 不在图中", e.ID, e.Target)
		}
		key := edgeKey{e.Source, e.Target, e.Type}
		if _, dup := edges[key]; dup {
			return fmt.Errorf("边重复: %s -> %s (%s)", e.Source, e.Target, e.Type)
		}
		if _, dup := edgeIDs[e.ID]; dup {
			return fmt.Errorf("边 ID 重复: %s", e.ID)
		}
		edges[key] = struct{}{}
		edgeIDs[e.ID] = struct{}{}
	}
	return nil
}
