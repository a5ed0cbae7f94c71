package services

import (
	"fmt"
	"strings"

	"github.com/hnv-dev/product_desc_app/internal/dto"
)

// Fixed-weight SEO heuristic: length 30, keywords up to 25, hashtags 15,
// call-to-action 15, emoji 15, for a maximum score of 100. The keyword and
// call-to-action lists target Vietnamese-language product copy.
var (
	seoKeywords = []string{"chất lượng", "tươi", "ngon", "sạch", "dinh dưỡng", "vitamin", "tự nhiên"}
	seoCTAWords = []string{"đặt hàng", "mua ngay", "gọi ngay", "liên hệ"}
	seoEmojis   = []rune{'🍎', '🍊', '🍇', '🍌', '🍓', '✨', '💎', '🌟'}
)

// ScoreSEO evaluates description text against the fixed heuristic and
// reports the contributing factors alongside the total.
func (s *DescriptionService) ScoreSEO(req dto.SEOScoreRequest) dto.SEOScoreResponse {
	score := 0
	var factors []string
	lower := strings.ToLower(req.Text)

	wordCount := len(strings.Fields(req.Text))
	if wordCount >= 100 && wordCount <= 500 {
		score += 30
		factors = append(factors, "good length")
	} else {
		factors = append(factors, fmt.Sprintf("length: %d words (100-500 recommended)", wordCount))
	}

	foundKeywords := 0
	for _, kw := range seoKeywords {
		if strings.Contains(lower, kw) {
			foundKeywords++
		}
	}
	keywordScore := foundKeywords * 5
	if keywordScore > 25 {
		keywordScore = 25
	}
	score += keywordScore
	factors = append(factors, fmt.Sprintf("keywords: %d/%d", foundKeywords, len(seoKeywords)))

	if strings.Count(req.Text, "#") >= 3 {
		score += 15
		factors = append(factors, "has hashtags")
	} else {
		factors = append(factors, "missing hashtags")
	}

	hasCTA := false
	for _, cta := range seoCTAWords {
		if strings.Contains(lower, cta) {
			hasCTA = true
			break
		}
	}
	if hasCTA {
		score += 15
		factors = append(factors, "has call-to-action")
	} else {
		factors = append(factors, "missing call-to-action")
	}

	hasEmoji := false
	for _, r := range req.Text {
		for _, e := range seoEmojis {
			if r == e {
				hasEmoji = true
				break
			}
		}
		if hasEmoji {
			break
		}
	}
	if hasEmoji {
		score += 15
		factors = append(factors, "has emoji")
	} else {
		factors = append(factors, "missing emoji")
	}

	return dto.SEOScoreResponse{Score: score, Factors: factors}
}
