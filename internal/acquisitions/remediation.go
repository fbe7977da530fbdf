package acquisitions

import (
	"sort"
	"strings"

	"github.com/mufattish/backend/internal/normalization"
	"github.com/mufattish/backend/internal/types"
)

// RemediationEntry is one line of the remediation knowledge base. Key is a
// folded substring tested against criterion labels; criterion wording varies
// slightly by level, which is why dispatch is containment rather than exact
// match. The table is evaluated top to bottom, first match wins.
type RemediationEntry struct {
	Key        string `json:"-"`
	RootCause  string `json:"root_cause"`
	Suggestion string `json:"suggestion"`
}

var remediationKB = []RemediationEntry{
	{
		Key:        "قراء",
		RootCause:  "ضعف في فك الرموز والطلاقة القرائية",
		Suggestion: "حصص دعم في القراءة المقطعية مع نصوص قصيرة متدرجة، وقراءة ثنائية يومية",
	},
	{
		Key:        "املاء",
		RootCause:  "عدم تثبيت قواعد الرسم الإملائي",
		Suggestion: "إملاءات قصيرة مركزة على الظاهرة المتعثر فيها مع التصحيح الذاتي الموجه",
	},
	{
		Key:        "اعداد",
		RootCause:  "عدم استيعاب النظام العشري ومبدأ المنزلة",
		Suggestion: "أنشطة معالجة يدوية بالمحسوسات (قطع العد، الجدول المنزلي) قبل التجريد",
	},
	{
		Key:        "جمع",
		RootCause:  "خلل في آليتي الجمع والطرح مع الاحتفاظ",
		Suggestion: "تمارين قصيرة يومية متدرجة على العمليتين مع تفكيك خطوات الاحتفاظ",
	},
	{
		Key:        "مشكل",
		RootCause:  "صعوبة في تحليل الوضعية المشكلة واختيار العملية",
		Suggestion: "تدريب صريح على قراءة المعطيات وتمثيلها برسم أو مخطط قبل الحل",
	},
	{
		Key:        "هندس",
		RootCause:  "تمثلات ناقصة للأشكال والمجسمات",
		Suggestion: "أنشطة تقطيع وتركيب وتقص للأشكال مع تسمية الخصائص أثناء المعالجة",
	},
	{
		Key:        "قياس",
		RootCause:  "عدم ربط وحدات القياس بوضعيات دالة",
		Suggestion: "وضعيات قياس فعلية داخل القسم (أطوال، كتل، سعات) قبل التحويلات المجردة",
	},
	{
		Key:        "ترقيم",
		RootCause:  "إغفال وظيفة علامات الترقيم في بناء المعنى",
		Suggestion: "تمارين تقطيع نصوص خالية من الترقيم واستعادته مع التعليل",
	},
	{
		Key:        "ينتج",
		RootCause:  "ضعف التخطيط للإنتاج الكتابي وبناء الانسجام",
		Suggestion: "كتابة موجهة على مراحل: تخطيط ثم مسودة ثم مراجعة بشبكة معايير مبسطة",
	},
	{
		Key:        "شفوي",
		RootCause:  "قلة فرص التدريب على التواصل الشفوي",
		Suggestion: "وضعيات تواصلية قصيرة يومية (سرد، وصف، حوار) مع تناوب منظم على الكلمة",
	},
	{
		Key:        "نحو",
		RootCause:  "عدم توظيف القواعد المدروسة خارج حصتها",
		Suggestion: "استثمار الظواهر النحوية في جمل المتعلمين أنفسهم لا في أمثلة معزولة",
	},
}

var remediationFallback = RemediationEntry{
	RootCause:  "تعثر في الكفاءة المستهدفة يتطلب تشخيصا أدق",
	Suggestion: "بناء أنشطة دعم مصغرة انطلاقا من إنتاجات المتعلمين المتعثرين في هذا المعيار",
}

// RemediationSuggestion links a high-failure criterion to the intervention
// the knowledge base proposes for it.
type RemediationSuggestion struct {
	CompetencyID   string  `json:"competency_id"`
	CriterionID    int     `json:"criterion_id"`
	CriterionLabel string  `json:"criterion_label"`
	FailureCount   int     `json:"failure_count"`
	FailureShare   float64 `json:"failure_share"`
	RootCause      string  `json:"root_cause"`
	Suggestion     string  `json:"suggestion"`
}

// SuggestRemediation ranks criteria by their share of D grades across the
// cohort, descending, and returns remediation entries for the top limit
// criteria that have at least one failure. Ties keep schema order.
func SuggestRemediation(students []types.AcqStudent, def *SubjectDefinition, limit int) []RemediationSuggestion {
	if len(students) == 0 || limit <= 0 {
		return []RemediationSuggestion{}
	}

	type failure struct {
		competencyID string
		criterion    Criterion
		count        int
	}
	failures := make([]failure, 0, def.TotalCriteria())
	for _, comp := range def.Competencies {
		for _, crit := range comp.Criteria {
			count := 0
			for i := range students {
				if g, ok := students[i].GradeAt(comp.ID, crit.ID); ok && g == types.GradeD {
					count++
				}
			}
			if count > 0 {
				failures = append(failures, failure{comp.ID, crit, count})
			}
		}
	}
	sort.SliceStable(failures, func(a, b int) bool {
		return failures[a].count > failures[b].count
	})
	if len(failures) > limit {
		failures = failures[:limit]
	}

	cohort := float64(len(students))
	out := make([]RemediationSuggestion, 0, len(failures))
	for _, f := range failures {
		entry := lookupRemediation(f.criterion.Label)
		out = append(out, RemediationSuggestion{
			CompetencyID:   f.competencyID,
			CriterionID:    f.criterion.ID,
			CriterionLabel: f.criterion.Label,
			FailureCount:   f.count,
			FailureShare:   float64(f.count) / cohort * 100,
			RootCause:      entry.RootCause,
			Suggestion:     entry.Suggestion,
		})
	}
	return out
}

func lookupRemediation(criterionLabel string) RemediationEntry {
	folded := normalization.NormalizeArabic(criterionLabel)
	for _, entry := range remediationKB {
		if strings.Contains(folded, entry.Key) {
			return entry
		}
	}
	return remediationFallback
}
