package talent

func init() {
	banks = map[Variant][]Question{
		VariantSelfRating: selfRatingBank(),
		VariantStatement:  statementBank(),
	}
	if err := Validate(); err != nil {
		panic(err)
	}
}

// statements is the shared item list. Both banks ask the same 40 items in
// the same order; only the phrasing differs.
var statements = []Question{
	{Text: "用艺术性的方式做事", Category: CategoryJ},
	{Text: "给别人传授知识", Category: CategoryE},
	{Text: "需要手眼协调的任务", Category: CategoryF},
	{Text: "流畅准确地完成一系列动作", Category: CategoryF},
	{Text: "跟随音乐的节拍", Category: CategoryG},
	{Text: "判断动物的需求", Category: CategoryH},
	{Text: "刻画塑造事物", Category: CategoryJ},
	{Text: "需要手指灵巧的任务", Category: CategoryF},
	{Text: "清楚明白地阐述事情", Category: CategoryA},
	{Text: "让配色协调", Category: CategoryJ},
	{Text: "理解公式", Category: CategoryB},
	{Text: "与身体相关的任务", Category: CategoryF},
	{Text: "产出丰富的想法", Category: CategoryI},
	{Text: "空间想象和思考", Category: CategoryC},
	{Text: "找到不同寻常的问题解决办法", Category: CategoryI},
	{Text: "有逻辑地思考问题", Category: CategoryB},
	{Text: "理解数学问题", Category: CategoryB},
	{Text: "用我的语言说服对方", Category: CategoryA},
	{Text: "识别和理解我的情绪", Category: CategoryD},
	{Text: "用数学方式进行论述", Category: CategoryB},
	{Text: "从不同视角想象物体", Category: CategoryC},
	{Text: "用语言来表达想法", Category: CategoryA},
	{Text: "认识到我的愿望和需求，并与人交流", Category: CategoryD},
	{Text: "替别人着想", Category: CategoryE},
	{Text: "拥有破框思维", Category: CategoryI},
	{Text: "空间定位", Category: CategoryC},
	{Text: "遇到压力时让自己平静", Category: CategoryD},
	{Text: "根据说明将事物在脑海中呈现出来", Category: CategoryC},
	{Text: "与别人打交道", Category: CategoryE},
	{Text: "与不熟悉的动物共处", Category: CategoryH},
	{Text: "听到旋律中细微的不和谐之处", Category: CategoryG},
	{Text: "照料不同种类的植物", Category: CategoryH},
	{Text: "唱歌", Category: CategoryG},
	{Text: "在时间紧迫的情况下处理问题", Category: CategoryD},
	{Text: "识别不同草药并在工作中使用它们", Category: CategoryH},
	{Text: "原创性思考", Category: CategoryI},
	{Text: "装饰空间", Category: CategoryJ},
	{Text: "迅速理解对方想要给我传达什么信息", Category: CategoryA},
	{Text: "学习不同种类的乐器", Category: CategoryG},
	{Text: "在人与人之间斡旋", Category: CategoryE},
}

func statementBank() []Question {
	out := make([]Question, len(statements))
	copy(out, statements)
	return out
}

func selfRatingBank() []Question {
	out := make([]Question, len(statements))
	for i, q := range statements {
		out[i] = Question{Text: "我擅长" + q.Text + "？", Category: q.Category}
	}
	return out
}
