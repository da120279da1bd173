package model

// AvailableTags is the fixed allow-list of tags the quiz asks about, in display order.
var AvailableTags = []string{
	"dp",
	"greedy",
	"implementation",
	"math",
	"brute force",
	"data structures",
	"graphs",
	"constructive algorithms",
	"sortings",
	"binary search",
	"combinatorics",
	"number theory",
	"trees",
	"geometry",
	"shortest paths",
	"strings",
	"dfs and similar",
	"two pointers",
	"bitmasks",
	"probabilities",
	"hashing",
	"games",
	"flows",
	"matrices",
	"meet-in-the-middle",
	"graph matchings",
	"ternary search",
	"dsu",
	"divide and conquer",
	"expression parsing",
	"schedules",
	"scc",
	"fft",
	"interactive",
	"2-sat",
	"chinese remainder theorem",
}

var tagLabels = map[string]string{
	"dp":                        "动态规划",
	"greedy":                    "贪心",
	"implementation":            "实现",
	"math":                      "数学",
	"brute force":               "暴力枚举",
	"data structures":           "数据结构",
	"graphs":                    "图论",
	"constructive algorithms":   "构造",
	"sortings":                  "排序",
	"binary search":             "二分查找",
	"combinatorics":             "组合数学",
	"number theory":             "数论",
	"trees":                     "树",
	"geometry":                  "几何",
	"shortest paths":            "最短路",
	"strings":                   "字符串",
	"dfs and similar":           "深搜及相关",
	"two pointers":              "双指针",
	"bitmasks":                  "位运算/状态压缩",
	"probabilities":             "概率",
	"hashing":                   "哈希",
	"games":                     "博弈论",
	"flows":                     "网络流",
	"matrices":                  "矩阵",
	"meet-in-the-middle":        "折半搜索",
	"graph matchings":           "图匹配",
	"ternary search":            "三分查找",
	"dsu":                       "并查集",
	"divide and conquer":        "分治",
	"expression parsing":        "表达式解析",
	"schedules":                 "调度",
	"scc":                       "强连通分量",
	"fft":                       "快速傅里叶变换",
	"interactive":               "交互题",
	"2-sat":                     "2-SAT",
	"chinese remainder theorem": "中国剩余定理",
}

var allowedTags = func() map[string]struct{} {
	set := make(map[string]struct{}, len(AvailableTags))
	for _, tag := range AvailableTags {
		set[tag] = struct{}{}
	}
	return set
}()

func IsAllowedTag(tag string) bool {
	_, ok := allowedTags[tag]
	return ok
}

func TagLabel(tag string) string {
	if label, ok := tagLabels[tag]; ok {
		return label
	}
	return tag
}

func TagOptions() []TagOption {
	options := make([]TagOption, 0, len(AvailableTags))
	for _, tag := range AvailableTags {
		options = append(options, TagOption{Key: tag, Label: TagLabel(tag)})
	}
	return options
}

// IntersectAllowed dedupes tags, keeping first-seen order, and drops anything
// outside the allow-list. The result is never nil.
func IntersectAllowed(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		if IsAllowedTag(tag) {
			out = append(out, tag)
		}
	}
	return out
}

// SameTagSet compares two tag lists as sets.
func SameTagSet(a, b []string) bool {
	left := make(map[string]struct{}, len(a))
	for _, tag := range a {
		left[tag] = struct{}{}
	}
	right := make(map[string]struct{}, len(b))
	for _, tag := range b {
		right[tag] = struct{}{}
	}
	if len(left) != len(right) {
		return false
	}
	for tag := range left {
		if _, ok := right[tag]; !ok {
			return false
		}
	}
	return true
}
