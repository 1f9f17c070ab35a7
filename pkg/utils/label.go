// Package utils 提供推荐结果的解释标签。
package utils

import "strings"

const (
	valueSep  = "|"
	sourceSep = ","
)

// Label 是附着在推荐结果或请求上的解释信息，例如召回来源、被跳过的策略。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / fallback / filter / rerank
}

// Values 按 "|" 拆开累积的取值。
func (l Label) Values() []string {
	if l.Value == "" {
		return nil
	}
	return strings.Split(l.Value, valueSep)
}

// MergeLabel 合并同名标签：Value 以 "|" 累积，Source 以 "," 累积，已出现过的片段不重复追加。
func MergeLabel(existing, incoming Label) Label {
	return Label{
		Value:  appendPart(existing.Value, incoming.Value, valueSep),
		Source: appendPart(existing.Source, incoming.Source, sourceSep),
	}
}

func appendPart(acc, part, sep string) string {
	switch {
	case part == "":
		return acc
	case acc == "":
		return part
	}
	for _, p := range strings.Split(acc, sep) {
		if p == part {
			return acc
		}
	}
	return acc + sep + part
}
