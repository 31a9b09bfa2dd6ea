package model

import (
	"reflect"
	"testing"
)

func TestParseSemester(t *testing.T) {
	tests := []struct {
		in      string
		want    Semester
		wantErr bool
	}{
		{"", SemesterFullYear, false},
		{"Full Year", SemesterFullYear, false},
		{"FullYear", SemesterFullYear, false},
		{"full_year", SemesterFullYear, false},
		{"autumn", SemesterAutumn, false},
		{" Spring ", SemesterSpring, false},
		{"SUMMER", SemesterSummer, false},
		{"Winter", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSemester(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSemester(%q) err=%v，期望出错=%v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSemester(%q)=%q，期望=%q", tt.in, got, tt.want)
		}
	}
}

func TestParseDegree(t *testing.T) {
	if d, err := ParseDegree("B.Sc"); err != nil || d != DegreeBSc {
		t.Errorf("期望 BSc，实际=%q err=%v", d, err)
	}
	if d, err := ParseDegree("meng"); err != nil || d != DegreeMEng {
		t.Errorf("期望 MEng，实际=%q err=%v", d, err)
	}
	if _, err := ParseDegree("HND"); err == nil {
		t.Error("期望未知学位返回错误")
	}
}

func TestCourse_ModuleCodes(t *testing.T) {
	c := &Course{
		CoreModules: []ModuleRef{
			{ModuleCode: "MTH1001"}, {ModuleCode: "MTH2001"}, {ModuleCode: "MTH1001"},
		},
		OptionalModules: []ModuleRef{
			{ModuleCode: "MTH2001"}, {ModuleCode: ""}, {ModuleCode: "MTH3003"},
		},
	}

	got := c.ModuleCodes()
	want := []string{"MTH1001", "MTH2001", "MTH3003"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ModuleCodes()=%v，期望=%v", got, want)
	}

	core := c.CoreCodeSet()
	if _, ok := core["MTH2001"]; !ok {
		t.Error("MTH2001 应属于核心模块")
	}
	if _, ok := core["MTH3003"]; ok {
		t.Error("MTH3003 不应属于核心模块")
	}
}
