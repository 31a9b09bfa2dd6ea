package dto

import "github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/graph"

// ── 图响应 ──
// 图响应会被序列化进缓存，字段只使用可 JSON 往返的类型

// GraphStats 图规模统计
type GraphStats struct {
	NodeCount         int `json:"node_count"`
	EdgeCount         int `json:"edge_count"`
	PrerequisiteEdges int `json:"prerequisite_edges"`
}

// CourseGraphResponse 课程依赖图（GET /courses/:code/graph）
type CourseGraphResponse struct {
	CourseCode string       `json:"course_code"`
	CourseName string       `json:"course_name"`
	Nodes      []graph.Node `json:"nodes"`
	Edges      []graph.Edge `json:"edges"`
	Stats      GraphStats   `json:"stats"`
}

// PrerequisiteChainResponse 先修链（GET /modules/:code/prerequisites）
type PrerequisiteChainResponse struct {
	ModuleCode string       `json:"module_code"`
	MaxDepth   int          `json:"max_depth"`
	Nodes      []graph.Node `json:"nodes"`
	Edges      []graph.Edge `json:"edges"`
	Unresolved []string     `json:"unresolved"`
	Stats      GraphStats   `json:"stats"`
}

// StatsOf 统计图规模
func StatsOf(g *graph.Graph) GraphStats {
	return GraphStats{
		NodeCount:         len(g.Nodes),
		EdgeCount:         len(g.Edges),
		PrerequisiteEdges: len(g.EdgesOfType(graph.EdgePrerequisite)),
	}
}
