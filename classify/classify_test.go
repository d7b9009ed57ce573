package classify

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want Category
	}{
		{name: "plain chinese", text: "提交失败", want: Chinese},
		{name: "quoted chinese", text: `"测试字符串"`, want: Chinese},
		{name: "plain english", text: "Saved successfully", want: English},
		{name: "quoted english", text: `"Database connection established"`, want: English},
		{name: "printf english", text: "Error: %s occurred", want: Format},
		{name: "printf chinese wins over cjk", text: "错误日志: %s", want: Format},
		{name: "printf with width", text: "id=%05d", want: Format},
		{name: "brace indexed", text: "value is {0}", want: Format},
		{name: "empty braces", text: "count {}", want: Format},
		{name: "template marker", text: "hello ${name}", want: Format},
		{name: "empty string", text: "", want: English},
		{name: "whitespace only", text: "   ", want: English},
		{name: "quotes only", text: `""`, want: English},
		{name: "percent without verb", text: "100% done", want: English},
		{name: "cjk punctuation only", text: "，。！", want: English},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.text); got != tc.want {
				t.Errorf("Classify(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{`"提交失败"`, "提交失败"},
		{`  'single'  `, "single"},
		{"no quotes", "no quotes"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := Clean(tc.in); got != tc.want {
			t.Errorf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
		}
		// Cleaning must be idempotent.
		if got := Clean(Clean(tc.in)); got != tc.want {
			t.Errorf("Clean(Clean(%q)) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestContainsChinese(t *testing.T) {
	t.Parallel()

	if !ContainsChinese("a中b") {
		t.Error("expected CJK detection in mixed string")
	}
	if ContainsChinese("abc") {
		t.Error("unexpected CJK detection in ASCII string")
	}
	// Boundary code points of the CJK Unified Ideographs block.
	if !ContainsChinese(string(rune(0x4E00))) || !ContainsChinese(string(rune(0x9FFF))) {
		t.Error("expected block boundaries to be detected")
	}
	if ContainsChinese(string(rune(0x4DFF))) || ContainsChinese(string(rune(0xA000))) {
		t.Error("code points outside the block must not be detected")
	}
}
