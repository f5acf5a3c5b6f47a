package aggregator

import "strings"

// querySuffix is the conventional "good restaurants" search suffix.
const querySuffix = "맛집"

// categoryKeywords drives the fan-out: one sub-query per keyword, inserted
// into the base query, defeats the provider's per-request result cap by
// varying the query across cuisines and common dishes.
var categoryKeywords = []string{
	"한식", "중식", "일식", "양식", "분식", "아시아음식", "카페",
	"고기", "국밥", "찌개", "돈까스", "치킨", "버거", "김밥",
	"샐러드", "덮밥", "카레", "쌀국수", "파스타", "피자", "족발",
	"보쌈", "냉면", "비빔밥", "백반", "우동", "초밥", "만두",
	"떡볶이", "칼국수",
}

// BuildQuery assembles the base query the surrounding application hands to
// Search: "<location> [categories...] 맛집".
func BuildQuery(location string, categories []string) string {
	parts := []string{location}
	parts = append(parts, categories...)
	parts = append(parts, querySuffix)
	return strings.Join(parts, " ")
}

// buildSubQueries returns the base query plus one variant per category
// keyword. A keyword already present in the query textually is skipped, so
// "강남역 초밥 맛집" never produces "강남역 초밥 초밥 맛집".
func buildSubQueries(query string) []string {
	subQueries := make([]string, 0, len(categoryKeywords)+1)
	subQueries = append(subQueries, query)
	for _, kw := range categoryKeywords {
		if strings.Contains(query, kw) {
			continue
		}
		subQueries = append(subQueries, insertKeyword(query, kw))
	}
	return subQueries
}

// insertKeyword places the keyword before the 맛집 suffix when present, so
// the sub-query reads naturally; otherwise it is appended.
func insertKeyword(query, kw string) string {
	if strings.HasSuffix(query, querySuffix) {
		base := strings.TrimSpace(strings.TrimSuffix(query, querySuffix))
		return base + " " + kw + " " + querySuffix
	}
	return query + " " + kw
}
