package insight

import (
	"fmt"

	"github.com/abhisek/talentquiz/internal/scoring"
	"github.com/abhisek/talentquiz/internal/talent"
)

var suggestions = map[talent.Category]string{
	talent.CategoryA: "每天写一段日记或读书笔记，试着把想法讲给别人听。",
	talent.CategoryB: "挑一类逻辑谜题或编程练习，每周固定时间做几道。",
	talent.CategoryC: "尝试画草图、搭模型或者玩空间拼图类游戏。",
	talent.CategoryD: "每周留出安静的时间回顾目标和情绪变化。",
	talent.CategoryE: "主动参与一次团队项目，练习倾听和协调。",
	talent.CategoryF: "选一项需要手眼协调的运动或手工并坚持练习。",
	talent.CategoryG: "学一件乐器或跟着喜欢的歌曲练习节奏。",
	talent.CategoryH: "多去户外观察植物和动物，记录看到的变化。",
	talent.CategoryI: "给身边的小问题想三种不同的解决办法。",
	talent.CategoryJ: "逛一次展览，留意配色、构图和设计细节。",
}

// Fallback builds a deterministic report from the classified bands alone.
func Fallback(in Input) *Report {
	r := &Report{Source: SourceFallback}
	rep := in.Report
	if len(rep.Rows) == 0 {
		r.Summary = "没有可用的得分。"
		return r
	}

	r.Summary = rep.Headline() + fmt.Sprintf("本报告基于%s的回答生成。", in.Variant.DisplayName())

	for _, c := range rep.Strongest {
		r.Strengths = append(r.Strengths, describeRow(rep, c))
		if s, ok := suggestions[c]; ok {
			r.Suggestions = append(r.Suggestions, s)
		}
	}
	for _, c := range rep.Weakest {
		r.Growth = append(r.Growth, describeRow(rep, c))
	}
	return r
}

func describeRow(rep scoring.Report, c talent.Category) string {
	row, ok := rep.Row(c)
	if !ok {
		return c.Name()
	}
	if !row.Classified {
		return fmt.Sprintf("%s：%d分", row.Name, row.Total)
	}
	return fmt.Sprintf("%s：%d分，%s", row.Name, row.Total, row.Band)
}
