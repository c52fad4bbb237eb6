package subscription

import (
	"slices"
	"strings"
)

// RegionRule maps a region label to the keywords that identify it in a
// node name. Keywords are lowercase.
type RegionRule struct {
	Name     string
	Keywords []string
}

var regionRules = []RegionRule{
	{Name: "香港", Keywords: []string{"香港", "hong kong", "hongkong", "hk", "🇭🇰"}},
	{Name: "台湾", Keywords: []string{"台湾", "taiwan", "tw", "🇹🇼"}},
	{Name: "日本", Keywords: []string{"日本", "japan", "jp", "🇯🇵"}},
	{Name: "新加坡", Keywords: []string{"新加坡", "singapore", "sg", "🇸🇬"}},
	{Name: "美国", Keywords: []string{"美国", "united states", "us", "usa", "🇺🇸"}},
	{Name: "韩国", Keywords: []string{"韩国", "korea", "kr", "🇰🇷"}},
	{Name: "德国", Keywords: []string{"德国", "germany", "de", "🇩🇪"}},
	{Name: "英国", Keywords: []string{"英国", "united kingdom", "uk", "🇬🇧"}},
}

// RegionRules returns a copy of the ordered rule table.
func RegionRules() []RegionRule {
	out := make([]RegionRule, len(regionRules))
	for i, rule := range regionRules {
		out[i] = RegionRule{Name: rule.Name, Keywords: slices.Clone(rule.Keywords)}
	}
	return out
}

// MatchRegion returns the first region whose keyword occurs in name.
// Matching is a case-insensitive substring test; rule order decides ties.
func MatchRegion(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, rule := range regionRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Name, true
			}
		}
	}
	return "", false
}
