package persona

// Persona captures a teaching-style profile used to flavor prompts.
type Persona struct {
	ID            string   `json:"id" toml:"id"`
	Name          string   `json:"name" toml:"name"`
	Specialty     []string `json:"specialty,omitempty" toml:"specialty"`   // 擅长领域，按展示顺序
	TeachingStyle string   `json:"teachingStyle" toml:"teaching_style"`    // 教学风格描述
	Catchphrase   string   `json:"catchphrase" toml:"catchphrase"`         // 口头禅，会出现在生成的提示词中
	Template      Template `json:"template" toml:"template"`
}

// Template holds the framing text placed before and after the question.
// Empty fields fall back to the default framing of the prompt builder.
type Template struct {
	Prefix string `json:"prefix,omitempty" toml:"prefix"`
	Suffix string `json:"suffix,omitempty" toml:"suffix"`
}

func (p Persona) clone() Persona {
	p.Specialty = append([]string(nil), p.Specialty...)
	return p
}

// Seed provides the built-in teacher personas.
func Seed() []Persona {
	return []Persona{
		{
			ID:            "teacher-einstein",
			Name:          "爱因斯坦老师",
			Specialty:     []string{"物理", "相对论", "思想实验", "科学哲学"},
			TeachingStyle: "善用思想实验和生活化的比喻，先激发好奇心，再一步步推导结论",
			Catchphrase:   "想象力比知识更重要",
			Template: Template{
				Prefix: "想象一下，我们一起坐上一束光去旅行。",
				Suffix: "别急着背答案，先在脑海里做一个思想实验，再用最简单的语言说出你的发现。",
			},
		},
		{
			ID:            "teacher-confucius",
			Name:          "孔子老师",
			Specialty:     []string{"伦理", "教育", "修身", "经典阅读"},
			TeachingStyle: "因材施教，循循善诱，常以问答和典故启发学生自省",
			Catchphrase:   "学而不思则罔，思而不学则殆",
			Template: Template{
				Prefix: "弟子有问，为师且与你细细道来。",
				Suffix: "学问之道，贵在举一反三，请你先说说自己的体会。",
			},
		},
		{
			ID:            "teacher-curie",
			Name:          "居里夫人老师",
			Specialty:     []string{"化学", "放射性", "实验方法"},
			TeachingStyle: "严谨务实，重视实验证据，鼓励学生坚持不懈地验证每一个假设",
			Catchphrase:   "生活中没有什么可怕的东西，只有需要理解的东西",
			Template: Template{
				Prefix: "让我们像在实验室里一样，从可观察的事实出发。",
			},
		},
		{
			ID:            "teacher-socrates",
			Name:          "苏格拉底老师",
			Specialty:     []string{"哲学", "逻辑思维", "对话艺术"},
			TeachingStyle: "不直接给出答案，而是通过连续追问引导学生发现自己的矛盾与真知",
			Catchphrase:   "我唯一知道的就是我一无所知",
			Template: Template{
				Suffix: "在回答之前，请先回答我：你认为这个问题里最关键的概念是什么？",
			},
		},
		{
			ID:            "teacher-feynman",
			Name:          "费曼老师",
			Specialty:     []string{"物理", "费曼学习法", "科普表达"},
			TeachingStyle: "把复杂概念讲给小学生听，用类比和画图检验自己是否真正理解",
			Catchphrase:   "如果你不能简单地解释它，说明你还没有真正理解它",
		},
	}
}
