package acquisitions

import (
	"strings"

	"github.com/mufattish/backend/internal/normalization"
)

// Criterion is one evaluated line of a competency. IDs are 1-based and
// stable within their competency.
type Criterion struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// Competency groups an ordered list of criteria. The order is load-bearing:
// it fixes how the flat grade run extracted from a row maps onto criteria.
type Competency struct {
	ID       string      `json:"id"`
	Label    string      `json:"label"`
	Criteria []Criterion `json:"criteria"`
}

// SubjectDefinition fixes, for one (level, subject) pair, the competency
// grid, the minimum resolved grades a row needs to count as a student, and
// the two competency groups the quadrant indicator compares.
type SubjectDefinition struct {
	ID           string       `json:"id"`
	Label        string       `json:"label"`
	Competencies []Competency `json:"competencies"`
	MinGrades    int          `json:"min_grades"`

	AxisOne      []string `json:"axis_one"`
	AxisTwo      []string `json:"axis_two"`
	AxisOneLabel string   `json:"axis_one_label"`
	AxisTwoLabel string   `json:"axis_two_label"`
}

// TotalCriteria is the number of ordinal grade slots a fully graded row
// carries for this subject.
func (d *SubjectDefinition) TotalCriteria() int {
	n := 0
	for _, comp := range d.Competencies {
		n += len(comp.Criteria)
	}
	return n
}

// Competency returns the competency with the given id.
func (d *SubjectDefinition) Competency(id string) (Competency, bool) {
	for _, comp := range d.Competencies {
		if comp.ID == id {
			return comp, true
		}
	}
	return Competency{}, false
}

// Education level codes as selected by the caller.
const (
	LevelYear2 = "2"
	LevelYear4 = "4"
	LevelYear5 = "5"
)

func crits(labels ...string) []Criterion {
	out := make([]Criterion, 0, len(labels))
	for i, label := range labels {
		out = append(out, Criterion{ID: i + 1, Label: label})
	}
	return out
}

var year2Arabic = SubjectDefinition{
	ID:    "year2_arabic",
	Label: "اللغة العربية",
	Competencies: []Competency{
		{
			ID:    "reading_performance",
			Label: "الأداء القرائي",
			Criteria: crits(
				"يقرأ نصا قصيرا قراءة سليمة",
				"يحترم علامات الوقف أثناء القراءة",
				"يفهم المقروء ويجيب عن أسئلة حوله",
			),
		},
		{
			ID:    "written_comprehension",
			Label: "الفهم والإنتاج الكتابي",
			Criteria: crits(
				"يكتب الحروف والمقاطع كتابة صحيحة",
				"ينقل جملا قصيرة دون أخطاء",
				"يكتب كلمات مألوفة إملاء",
				"ينتج جملة بسيطة ذات معنى",
				"يعتني بتنظيم الورقة ووضوح الخط",
			),
		},
	},
	MinGrades:    4,
	AxisOne:      []string{"reading_performance"},
	AxisTwo:      []string{"written_comprehension"},
	AxisOneLabel: "الأداء القرائي",
	AxisTwoLabel: "الإنتاج الكتابي",
}

var year2Math = SubjectDefinition{
	ID:    "year2_math",
	Label: "الرياضيات",
	Competencies: []Competency{
		{
			ID:    "numbers_computation",
			Label: "الأعداد والحساب",
			Criteria: crits(
				"يقرأ ويكتب الأعداد الطبيعية ضمن 999",
				"يقارن الأعداد ويرتبها",
				"ينجز عمليتي الجمع والطرح",
			),
		},
		{
			ID:    "problem_solving",
			Label: "الهندسة وحل المشكلات",
			Criteria: crits(
				"يتعرف على الأشكال الهندسية المألوفة",
				"يستعمل وحدات القياس المناسبة",
				"يحل مشكلات جمعية وطرحية بسيطة",
			),
		},
	},
	MinGrades:    3,
	AxisOne:      []string{"numbers_computation"},
	AxisTwo:      []string{"problem_solving"},
	AxisOneLabel: "التحكم في الموارد",
	AxisTwoLabel: "حل المشكلات",
}

var year4Arabic = SubjectDefinition{
	ID:    "year4_arabic",
	Label: "اللغة العربية",
	Competencies: []Competency{
		{
			ID:    "oral_expression",
			Label: "التعبير الشفوي والتواصل",
			Criteria: crits(
				"يتواصل بلغة سليمة في وضعيات مختلفة",
				"يسرد حدثا مسموعا بتسلسل",
				"يعبر عن سند مصور بجمل مترابطة",
				"يوظف الرصيد اللغوي المكتسب",
				"يحترم آداب الحوار والاستماع",
			),
		},
		{
			ID:    "reading_performance",
			Label: "الأداء القرائي",
			Criteria: crits(
				"يقرأ نصوصا متنوعة قراءة مسترسلة",
				"يحترم ضوابط القراءة الجهرية",
				"يستخرج الفكرة العامة للنص",
				"يجيب عن أسئلة الفهم الصريح والضمني",
			),
		},
		{
			ID:    "written_comprehension",
			Label: "الفهم الكتابي",
			Criteria: crits(
				"يفهم التعليمات المكتوبة وينفذها",
				"يميز أنماط النصوص المدروسة",
				"يوظف قواعد اللغة المستهدفة",
				"يكتب إملاء دون أخطاء شائعة",
				"يستعمل علامات الترقيم استعمالا صحيحا",
			),
		},
		{
			ID:    "written_production",
			Label: "الإنتاج الكتابي",
			Criteria: crits(
				"ينتج نصا منسجما وفق التعليمة",
				"يرتب أفكاره ترتيبا منطقيا",
				"يوظف الروابط اللغوية المناسبة",
				"يحترم قواعد الرسم والإملاء في إنتاجه",
				"يقدم إنتاجا نظيفا مقروء الخط",
			),
		},
	},
	MinGrades:    10,
	AxisOne:      []string{"oral_expression", "reading_performance"},
	AxisTwo:      []string{"written_comprehension", "written_production"},
	AxisOneLabel: "الشفوي والقراءة",
	AxisTwoLabel: "الكتابي والإنتاج",
}

var year4Math = SubjectDefinition{
	ID:    "year4_math",
	Label: "الرياضيات",
	Competencies: []Competency{
		{
			ID:    "resource_mastery",
			Label: "التحكم في الموارد",
			Criteria: crits(
				"يقرأ ويكتب الأعداد ضمن النظام العشري",
				"يتحكم في العمليات الحسابية الأربع",
				"يتعرف على الأشكال والمجسمات وخصائصها",
				"يستعمل وحدات القياس ويحول بينها",
			),
		},
		{
			ID:    "problem_solving",
			Label: "توظيف الموارد لحل المشكلات",
			Criteria: crits(
				"يحلل وضعية مشكلة ويحدد معطياتها",
				"يختار العمليات المناسبة وينفذها",
				"يصوغ الحل ويتحقق من معقوليته",
			),
		},
	},
	MinGrades:    4,
	AxisOne:      []string{"resource_mastery"},
	AxisTwo:      []string{"problem_solving"},
	AxisOneLabel: "التحكم في الموارد",
	AxisTwoLabel: "حل المشكلات",
}

var year5Arabic = SubjectDefinition{
	ID:    "year5_arabic",
	Label: "اللغة العربية",
	Competencies: []Competency{
		{
			ID:    "oral_expression",
			Label: "التعبير الشفوي والتواصل",
			Criteria: crits(
				"يتدخل في وضعيات تواصلية دالة",
				"يسرد قصة مسموعة مع احترام تسلسلها",
				"يناقش فكرة ويبدي رأيه فيها",
				"يوظف رصيدا لغويا غنيا ومناسبا",
				"ينوع أساليبه بين الخبر والإنشاء",
				"يحترم مقام التخاطب وآدابه",
				"يلقي نصوصا محفوظة إلقاء معبرا",
			),
		},
		{
			ID:    "reading_performance",
			Label: "الأداء القرائي",
			Criteria: crits(
				"يقرأ نصوصا متنوعة قراءة معبرة مسترسلة",
				"يحترم ضوابط النطق السليم",
				"يحدد الأفكار الأساسية للنص",
				"يستنتج المعاني الضمنية",
				"يبدي رأيه في المقروء بتعليل",
				"يستعمل المعجم لشرح المفردات",
			),
		},
		{
			ID:    "written_comprehension",
			Label: "الفهم الكتابي",
			Criteria: crits(
				"يفهم نصوصا مكتوبة متنوعة الأنماط",
				"يميز بنية النص ومؤشراته",
				"يوظف الظواهر النحوية المستهدفة",
				"يوظف الظواهر الصرفية المستهدفة",
				"يكتب إملاء محترما قواعد الرسم",
				"يستثمر المقروء في وضعيات جديدة",
			),
		},
		{
			ID:    "written_production",
			Label: "الإنتاج الكتابي",
			Criteria: crits(
				"ينتج نصا سرديا أو وصفيا وفق التعليمة",
				"يخطط لإنتاجه قبل الكتابة",
				"يرتب الأفكار وفق تصميم منسجم",
				"يوظف الروابط وعلامات الترقيم",
				"يحترم قواعد النحو والصرف والإملاء",
				"يراجع إنتاجه ويحسنه",
				"يقدم عملا نظيفا مقروء الخط",
			),
		},
	},
	MinGrades:    13,
	AxisOne:      []string{"oral_expression", "reading_performance"},
	AxisTwo:      []string{"written_comprehension", "written_production"},
	AxisOneLabel: "الشفوي والقراءة",
	AxisTwoLabel: "الكتابي والإنتاج",
}

// schemaTable maps (level, folded subject root) onto a definition. Subjects
// arrive as free text picked by a human, so containment on a folded root is
// the contract, not equality.
var schemaTable = []struct {
	level       string
	subjectRoot string
	def         *SubjectDefinition
}{
	{LevelYear2, "عربي", &year2Arabic},
	{LevelYear2, "رياض", &year2Math},
	{LevelYear4, "عربي", &year4Arabic},
	{LevelYear4, "رياض", &year4Math},
	{LevelYear5, "عربي", &year5Arabic},
}

// FindSubjectDefinition resolves a (level, subject) selector pair. Level is
// matched exactly against the known codes; subject by substring containment
// after Arabic folding.
func FindSubjectDefinition(level, subject string) (*SubjectDefinition, bool) {
	folded := normalization.NormalizeArabic(subject)
	for _, entry := range schemaTable {
		if entry.level == level && strings.Contains(folded, entry.subjectRoot) {
			return entry.def, true
		}
	}
	return nil, false
}

// Selector names one supported (level, subject) pair.
type Selector struct {
	Level        string `json:"level"`
	SubjectLabel string `json:"subject_label"`
	SubjectID    string `json:"subject_id"`
}

// SupportedSelectors lists every (level, subject) pair the detailed parser
// has a positional mapping for, in table order.
func SupportedSelectors() []Selector {
	out := make([]Selector, 0, len(schemaTable))
	for _, entry := range schemaTable {
		out = append(out, Selector{
			Level:        entry.level,
			SubjectLabel: entry.def.Label,
			SubjectID:    entry.def.ID,
		})
	}
	return out
}
