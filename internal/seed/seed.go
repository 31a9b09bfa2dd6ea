// Package seed 解析课程目录 YAML 文档，并将其规范化为数据模型。
//
// 字段名兼容 camelCase 与 snake_case 两种写法，规范化仅在此处进行，
// 下游代码只处理 model.Course / model.Module。
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SamuelSmthSmth/ExeterCourseNodeGraph/internal/model"
)

//go:embed sample_catalog.yaml
var sampleCatalog []byte

// Catalog 一次导入的课程与模块集合
type Catalog struct {
	Courses []model.Course
	Modules []model.Module
}

type rawCatalog struct {
	Courses []map[string]interface{} `yaml:"courses"`
	Modules []map[string]interface{} `yaml:"modules"`
}

// ── 字段别名 ──

var (
	aliasModuleCode   = []string{"module_code", "moduleCode", "code"}
	aliasModuleTitle  = []string{"module_title", "moduleTitle", "title"}
	aliasCreditValue  = []string{"credit_value", "creditValue", "credits"}
	aliasSummary      = []string{"summary_of_contents", "summaryOfContents", "summary"}
	aliasOutcomes     = []string{"intended_learning_outcomes", "intendedLearningOutcomes"}
	aliasAssessments  = []string{"assessment_methods", "assessmentMethods"}
	aliasCourseYear   = []string{"course_year", "courseYear", "year"}
	aliasIsOptional   = []string{"is_optional", "isOptional"}
	aliasCourseCode   = []string{"course_code", "courseCode", "code"}
	aliasCourseName   = []string{"course_name", "courseName", "name"}
	aliasEntryReqs    = []string{"entry_requirements", "entryRequirements"}
	aliasCoreModules  = []string{"core_modules", "coreModules"}
	aliasOptModules   = []string{"optional_modules", "optionalModules"}
	aliasRefCode      = []string{"module", "module_code", "moduleCode"}
	aliasAssessMethod = []string{"method", "type"}
	aliasAssessWeight = []string{"percentage", "weight"}
)

// Sample 返回内置示例目录
func Sample() (*Catalog, error) {
	return Parse(sampleCatalog)
}

// Load 从文件读取并解析目录
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取目录文件失败: %w", err)
	}
	return Parse(data)
}

// Parse 解析 YAML 文档并校验，返回规范化后的目录
func Parse(data []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("解析目录 YAML 失败: %w", err)
	}

	var problems []string
	cat := &Catalog{}

	for i, m := range raw.Modules {
		mod, errs := normalizeModule(m)
		for _, e := range errs {
			problems = append(problems, fmt.Sprintf("modules[%d] %s: %s", i, mod.ModuleCode, e))
		}
		cat.Modules = append(cat.Modules, mod)
	}
	for i, c := range raw.Courses {
		course, errs := normalizeCourse(c)
		for _, e := range errs {
			problems = append(problems, fmt.Sprintf("courses[%d] %s: %s", i, course.CourseCode, e))
		}
		cat.Courses = append(cat.Courses, course)
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return cat, nil
}

// ValidationError 汇总目录中的全部校验问题
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("目录校验失败（%d 项）: %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

// ── 规范化 ──

func normalizeModule(raw map[string]interface{}) (model.Module, []string) {
	var errs []string
	m := model.Module{
		ModuleCode:               strings.TrimSpace(str(pick(raw, aliasModuleCode))),
		ModuleTitle:              strings.TrimSpace(str(pick(raw, aliasModuleTitle))),
		SummaryOfContents:        str(pick(raw, aliasSummary)),
		IntendedLearningOutcomes: strList(pick(raw, aliasOutcomes)),
		Prerequisites:            strList(pick(raw, []string{"prerequisites"})),
		Corequisites:             strList(pick(raw, []string{"corequisites"})),
		IsOptional:               boolean(pick(raw, aliasIsOptional)),
		URL:                      str(pick(raw, []string{"url"})),
	}

	if m.ModuleCode == "" {
		errs = append(errs, "module_code 不能为空")
	}
	if m.ModuleTitle == "" {
		errs = append(errs, "module_title 不能为空")
	}

	credit, ok := integer(pick(raw, aliasCreditValue))
	if !ok || credit <= 0 {
		errs = append(errs, "credit_value 必须为正整数")
	}
	m.CreditValue = credit

	if v := pick(raw, aliasCourseYear); v != nil {
		year, ok := integer(v)
		if !ok || year < 1 || year > 4 {
			errs = append(errs, "course_year 必须在 1-4 之间")
		} else {
			m.CourseYear = &year
		}
	}

	sem, err := model.ParseSemester(str(pick(raw, []string{"semester"})))
	if err != nil {
		errs = append(errs, err.Error())
	}
	m.Semester = sem

	for _, item := range list(pick(raw, aliasAssessments)) {
		am, ok := item.(map[string]interface{})
		if !ok {
			errs = append(errs, "assessment_methods 条目格式错误")
			continue
		}
		pct, _ := number(pick(am, aliasAssessWeight))
		m.AssessmentMethods = append(m.AssessmentMethods, model.AssessmentMethod{
			Method:     str(pick(am, aliasAssessMethod)),
			Percentage: pct,
		})
	}

	if m.IntendedLearningOutcomes == nil {
		m.IntendedLearningOutcomes = []string{}
	}
	if m.AssessmentMethods == nil {
		m.AssessmentMethods = []model.AssessmentMethod{}
	}
	if m.Prerequisites == nil {
		m.Prerequisites = []string{}
	}
	if m.Corequisites == nil {
		m.Corequisites = []string{}
	}
	return m, errs
}

func normalizeCourse(raw map[string]interface{}) (model.Course, []string) {
	var errs []string
	c := model.Course{
		CourseCode:        strings.TrimSpace(str(pick(raw, aliasCourseCode))),
		CourseName:        strings.TrimSpace(str(pick(raw, aliasCourseName))),
		Department:        strings.TrimSpace(str(pick(raw, []string{"department"}))),
		EntryRequirements: str(pick(raw, aliasEntryReqs)),
		Description:       str(pick(raw, []string{"description"})),
		URL:               str(pick(raw, []string{"url"})),
		Duration:          3,
	}

	if c.CourseCode == "" {
		errs = append(errs, "course_code 不能为空")
	}
	if c.CourseName == "" {
		errs = append(errs, "course_name 不能为空")
	}

	degree, err := model.ParseDegree(str(pick(raw, []string{"degree"})))
	if err != nil {
		errs = append(errs, err.Error())
	}
	c.Degree = degree

	if v := pick(raw, []string{"duration"}); v != nil {
		d, ok := integer(v)
		if !ok || d <= 0 {
			errs = append(errs, "duration 必须为正整数")
		} else {
			c.Duration = d
		}
	}

	core := pick(raw, aliasCoreModules)
	optional := pick(raw, aliasOptModules)
	// 兼容嵌套写法 modules: {core: [...], optional: [...]}
	if nested, ok := pick(raw, []string{"modules"}).(map[string]interface{}); ok {
		if core == nil {
			core = nested["core"]
		}
		if optional == nil {
			optional = nested["optional"]
		}
	}

	var refErrs []string
	c.CoreModules, refErrs = moduleRefs(core)
	errs = append(errs, refErrs...)
	c.OptionalModules, refErrs = moduleRefs(optional)
	errs = append(errs, refErrs...)

	return c, errs
}

// moduleRefs 接受字符串或 {module, year} 两种条目
func moduleRefs(v interface{}) ([]model.ModuleRef, []string) {
	refs := []model.ModuleRef{}
	var errs []string
	for _, item := range list(v) {
		switch it := item.(type) {
		case string:
			refs = append(refs, model.ModuleRef{ModuleCode: strings.TrimSpace(it)})
		case map[string]interface{}:
			ref := model.ModuleRef{ModuleCode: strings.TrimSpace(str(pick(it, aliasRefCode)))}
			if y := pick(it, []string{"year"}); y != nil {
				year, ok := integer(y)
				if !ok || year < 1 || year > 4 {
					errs = append(errs, fmt.Sprintf("模块引用 %s 的 year 必须在 1-4 之间", ref.ModuleCode))
					continue
				}
				ref.Year = &year
			}
			if ref.ModuleCode == "" {
				errs = append(errs, "模块引用缺少 module_code")
				continue
			}
			refs = append(refs, ref)
		default:
			errs = append(errs, fmt.Sprintf("无法识别的模块引用 %v", item))
		}
	}
	return refs, errs
}

// ── 类型宽松转换 ──

func pick(m map[string]interface{}, keys []string) interface{} {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func str(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func list(v interface{}) []interface{} {
	l, _ := v.([]interface{})
	return l
}

func strList(v interface{}) []string {
	items := list(v)
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, strings.TrimSpace(str(it)))
	}
	return out
}

func integer(v interface{}) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		if t == float64(int(t)) {
			return int(t), true
		}
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		return n, err == nil
	}
	return 0, false
}

func number(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(t), "%"), 64)
		return f, err == nil
	}
	return 0, false
}

func boolean(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	}
	return false
}
