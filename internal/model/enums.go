package model

import (
	"fmt"
	"strings"
)

// ── 学期 ──

// Semester 模块开设学期
type Semester string

const (
	SemesterAutumn   Semester = "Autumn"
	SemesterSpring   Semester = "Spring"
	SemesterSummer   Semester = "Summer"
	SemesterFullYear Semester = "Full Year"
)

// ParseSemester 宽松解析学期名称：忽略大小写、空格、连字符与下划线
// 空字符串返回默认值 Full Year
func ParseSemester(s string) (Semester, error) {
	key := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case "":
		return SemesterFullYear, nil
	case "autumn", "fall", "term1":
		return SemesterAutumn, nil
	case "spring", "term2":
		return SemesterSpring, nil
	case "summer", "term3":
		return SemesterSummer, nil
	case "fullyear", "year", "allyear":
		return SemesterFullYear, nil
	}
	return "", fmt.Errorf("未知学期 %q", s)
}

// Valid 是否为合法学期
func (s Semester) Valid() bool {
	switch s {
	case SemesterAutumn, SemesterSpring, SemesterSummer, SemesterFullYear:
		return true
	}
	return false
}

// ── 学位类型 ──

// Degree 课程学位类型
type Degree string

const (
	DegreeBSc  Degree = "BSc"
	DegreeBA   Degree = "BA"
	DegreeBEng Degree = "BEng"
	DegreeMSc  Degree = "MSc"
	DegreeMA   Degree = "MA"
	DegreeMEng Degree = "MEng"
	DegreePhD  Degree = "PhD"
	DegreeMRes Degree = "MRes"
)

var degrees = []Degree{DegreeBSc, DegreeBA, DegreeBEng, DegreeMSc, DegreeMA, DegreeMEng, DegreePhD, DegreeMRes}

// ParseDegree 忽略大小写与句点解析学位（"B.Sc" → BSc）
func ParseDegree(s string) (Degree, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), ".", ""))
	for _, d := range degrees {
		if strings.ToLower(string(d)) == key {
			return d, nil
		}
	}
	return "", fmt.Errorf("未知学位类型 %q", s)
}

// Valid 是否为合法学位类型
func (d Degree) Valid() bool {
	for _, v := range degrees {
		if v == d {
			return true
		}
	}
	return false
}
