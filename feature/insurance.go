package feature

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rushteam/finreckit/core"
)

const (
	// DefaultPremium 是保费文本中找不到数字时的替代值
	DefaultPremium = 5000.0
	premiumCap     = 10000.0

	ageMatchIn      = 1.0
	ageMatchOut     = 0.3
	ageMatchUnknown = 0.5
)

// 险种大类
const (
	CategoryAccident = "意外险"
	CategoryMedical  = "医疗险"
	CategoryLife     = "寿险"
	CategoryCritical = "重疾险"
	CategoryPension  = "养老险"
	CategoryProperty = "财产险"
)

var (
	integerPattern  = regexp.MustCompile(`\d+`)
	ageRangePattern = regexp.MustCompile(`^\s*(\d+)\s*[-~～]\s*(\d+)`)

	// categoryScores 是 KNN 向量第三维的险种编码
	categoryScores = &LookupEncoder{
		Scores: map[string]float64{
			CategoryAccident: 0.2,
			CategoryMedical:  0.4,
			CategoryLife:     0.6,
			CategoryCritical: 0.8,
			CategoryPension:  0.7,
			CategoryProperty: 0.3,
		},
		Default: 0.5,
	}

	// categoryOneHot 是余弦排序使用的 5 维险种向量（财产险不参与偏好）
	categoryOneHot = NewOneHotEncoder(
		[]string{CategoryAccident, CategoryMedical, CategoryLife, CategoryCritical, CategoryPension},
		0.2,
	)
)

// ExtractPremium 从保费描述文本中取第一个整数。
// 找不到时返回 DefaultPremium 与 MALFORMED_NUMERIC 错误，调用方记录日志后继续使用默认值。
func ExtractPremium(text string) (float64, error) {
	m := integerPattern.FindString(text)
	if m == "" {
		return DefaultPremium, core.NewDomainError(core.ModuleFeature, core.ErrorCodeMalformedNumeric,
			fmt.Sprintf("feature: no amount in premium text %q", text))
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return DefaultPremium, core.NewDomainError(core.ModuleFeature, core.ErrorCodeMalformedNumeric,
			fmt.Sprintf("feature: parse premium %q: %v", m, err))
	}
	return v, nil
}

// ParseAgeRange 解析 "min-max" 形式的适用年龄，ok=false 表示未声明或无法解析。
func ParseAgeRange(s string) (lo, hi int, ok bool) {
	if strings.TrimSpace(s) == "" {
		return 0, 0, false
	}
	m := ageRangePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	lo, err1 := strconv.Atoi(m[1])
	hi, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

// AgeMatch 计算用户年龄与产品适用年龄的匹配度。
func AgeMatch(age int, suitableAges string) float64 {
	lo, hi, ok := ParseAgeRange(suitableAges)
	if !ok {
		return ageMatchUnknown
	}
	if age >= lo && age <= hi {
		return ageMatchIn
	}
	return ageMatchOut
}

// CategoryScore 返回险种编码值。
func CategoryScore(category string) float64 {
	return categoryScores.Encode(category)
}

// InsuranceVector 构建保险的 KNN 特征向量：[保费归一化, 年龄匹配度, 险种编码]。
// 返回的 error 只说明保费文本用了默认值，向量本身始终可用。
func InsuranceVector(ins core.Insurance, p core.UserProfile) ([]float64, error) {
	premium, err := ExtractPremium(ins.BasePremium)
	vec := []float64{
		CapRatio(premium, premiumCap),
		AgeMatch(p.EffectiveAge(), ins.SuitableAges),
		CategoryScore(ins.Category),
	}
	return ClampVector(vec), err
}

// PreferenceVector 按年龄段返回用户的 5 维险种偏好向量。
func PreferenceVector(p core.UserProfile) []float64 {
	age := p.EffectiveAge()
	switch {
	case age < 30:
		return []float64{0.8, 0.6, 0.3, 0.2, 0.1} // 年轻人偏好意外险、医疗险
	case age < 50:
		return []float64{0.6, 0.8, 0.7, 0.5, 0.3} // 中年人偏好医疗险、重疾险、寿险
	default:
		return []float64{0.4, 0.7, 0.8, 0.9, 0.6} // 年长者偏好养老险、重疾险
	}
}

// CategoryVector 返回保险在偏好空间中的向量，未映射的险种为 [0.2]*5。
func CategoryVector(ins core.Insurance) []float64 {
	return categoryOneHot.Encode(ins.Category)
}
