package story

import (
	"errors"
	"fmt"
)

var (
	// ErrNodeNotFound 目标节点不在剧情表中
	ErrNodeNotFound = errors.New("story node not found")
	// ErrInvalidStory 剧情内容不合法（缺少起点、重复 ID、悬空的跳转目标等）
	ErrInvalidStory = errors.New("invalid story")
)

// Story 只读剧情表
type Story struct {
	startID string
	nodes   map[string]*Node
	order   []string // 保留文件中的节点顺序，便于校验工具输出
}

// New 根据节点列表构建剧情表并校验
//
// 参数：
//   - startID: 起始节点 ID
//   - nodes: 节点列表
//
// 返回：
//   - *Story: 剧情表
//   - error: 校验失败时返回包装了 ErrInvalidStory 的错误
func New(startID string, nodes []Node) (*Story, error) {
	s := &Story{
		startID: startID,
		nodes:   make(map[string]*Node, len(nodes)),
		order:   make([]string, 0, len(nodes)),
	}

	for i := range nodes {
		node := nodes[i]
		if node.ID == "" {
			return nil, fmt.Errorf("%w: node #%d has empty id", ErrInvalidStory, i)
		}
		if _, exists := s.nodes[node.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate node id %q", ErrInvalidStory, node.ID)
		}
		s.nodes[node.ID] = &node
		s.order = append(s.order, node.ID)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// validate 检查起点存在、所有跳转目标存在、按钮文字非空
func (s *Story) validate() error {
	if s.startID == "" {
		return fmt.Errorf("%w: start node id is empty", ErrInvalidStory)
	}
	if _, ok := s.nodes[s.startID]; !ok {
		return fmt.Errorf("%w: start node %q does not exist", ErrInvalidStory, s.startID)
	}

	for _, id := range s.order {
		for i, opt := range s.nodes[id].Options {
			if opt.Label == "" {
				return fmt.Errorf("%w: node %q option #%d has empty label", ErrInvalidStory, id, i)
			}
			if _, ok := s.nodes[opt.Target]; !ok {
				return fmt.Errorf("%w: node %q option %q points to unknown node %q",
					ErrInvalidStory, id, opt.Label, opt.Target)
			}
		}
	}
	return nil
}

// StartID 返回起始节点 ID
func (s *Story) StartID() string {
	return s.startID
}

// Start 返回起始节点
func (s *Story) Start() *Node {
	return s.nodes[s.startID]
}

// Lookup 按 ID 查询节点
// 节点不存在时返回包装了 ErrNodeNotFound 的错误
func (s *Story) Lookup(id string) (*Node, error) {
	node, ok := s.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return node, nil
}

// Len 返回节点数量
func (s *Story) Len() int {
	return len(s.order)
}

// Nodes 按文件顺序返回所有节点
func (s *Story) Nodes() []*Node {
	result := make([]*Node, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.nodes[id])
	}
	return result
}

// Unreachable 返回从起点出发无法到达的节点 ID（按文件顺序）
func (s *Story) Unreachable() []string {
	visited := map[string]bool{s.startID: true}
	queue := []string{s.startID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, opt := range s.nodes[id].Options {
			if !visited[opt.Target] {
				visited[opt.Target] = true
				queue = append(queue, opt.Target)
			}
		}
	}

	var result []string
	for _, id := range s.order {
		if !visited[id] {
			result = append(result, id)
		}
	}
	return result
}

// Endings 返回所有结局节点 ID（按文件顺序）
func (s *Story) Endings() []string {
	var result []string
	for _, id := range s.order {
		if s.nodes[id].IsTerminal() {
			result = append(result, id)
		}
	}
	return result
}

// WithStart 返回以 startID 为起点的剧情表副本（调试时从中途开始）
// 节点本身共享，剧情表只读所以不需要复制
func (s *Story) WithStart(startID string) (*Story, error) {
	if _, ok := s.nodes[startID]; !ok {
		return nil, fmt.Errorf("%w: start node %q does not exist", ErrInvalidStory, startID)
	}
	return &Story{
		startID: startID,
		nodes:   s.nodes,
		order:   s.order,
	}, nil
}
