// Package main 剧情表校验工具
//
// 加载剧情 YAML，检查节点 ID、跳转目标和计分字段，
// 并报告无法到达的节点、结局节点以及资源配置中缺失的图片 ID。
//
// Usage:
//
//	go run ./cmd/verify_story [flags]
//
// Flags:
//
//	--story <path>       剧情文件路径 (default: "data/story.yaml")
//	--resources <path>   资源配置路径，为空则跳过图片检查 (default: "data/resources.yaml")
//	--strict             存在无法到达的节点或缺失的图片时返回非零退出码
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/decker502/storyplayer/pkg/game"
	"github.com/decker502/storyplayer/pkg/story"
	"gopkg.in/yaml.v3"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run 执行校验并返回退出码
func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("verify_story", flag.ContinueOnError)
	fs.SetOutput(out)
	storyPath := fs.String("story", "data/story.yaml", "剧情文件路径")
	resourcesPath := fs.String("resources", "data/resources.yaml", "资源配置路径，为空则跳过图片检查")
	strict := fs.Bool("strict", false, "存在警告时返回非零退出码")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	data, err := os.ReadFile(*storyPath)
	if err != nil {
		fmt.Fprintf(out, "❌ 读取文件失败: %v\n", err)
		return 1
	}

	st, err := story.Parse(data)
	if err != nil {
		fmt.Fprintf(out, "❌ 剧情校验失败: %v\n", err)
		return 1
	}

	fmt.Fprintf(out, "✅ 剧情格式正确\n")
	fmt.Fprintf(out, "✅ 节点数量: %d (起点: %s)\n", st.Len(), st.StartID())
	fmt.Fprintf(out, "   结局节点: %s\n", joinOrNone(st.Endings()))

	warnings := 0

	if unreachable := st.Unreachable(); len(unreachable) > 0 {
		fmt.Fprintf(out, "⚠️  无法到达的节点: %s\n", strings.Join(unreachable, ", "))
		warnings++
	}

	if *resourcesPath != "" {
		missing, err := missingImages(st, *resourcesPath)
		if err != nil {
			fmt.Fprintf(out, "❌ 资源配置读取失败: %v\n", err)
			return 1
		}
		if len(missing) > 0 {
			fmt.Fprintf(out, "⚠️  资源配置中缺失的图片: %s\n", strings.Join(missing, ", "))
			warnings++
		} else {
			fmt.Fprintf(out, "✅ 所有图片 ID 都已配置\n")
		}
	}

	if *strict && warnings > 0 {
		return 1
	}
	return 0
}

// missingImages 返回节点引用但资源配置中没有定义的图片 ID
// 以 "assets/" 开头的直接路径不检查
func missingImages(st *story.Story, resourcesPath string) ([]string, error) {
	data, err := os.ReadFile(resourcesPath)
	if err != nil {
		return nil, err
	}
	var cfg game.ResourceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", resourcesPath, err)
	}

	known := make(map[string]bool)
	for _, group := range cfg.Groups {
		for _, img := range group.Images {
			known[img.ID] = true
		}
	}

	seen := make(map[string]bool)
	var missing []string
	for _, node := range st.Nodes() {
		ref := node.Image
		if ref == "" || strings.HasPrefix(ref, "assets/") || known[ref] || seen[ref] {
			continue
		}
		seen[ref] = true
		missing = append(missing, ref)
	}
	return missing, nil
}

func joinOrNone(ids []string) string {
	if len(ids) == 0 {
		return "(无)"
	}
	return strings.Join(ids, ", ")
}
