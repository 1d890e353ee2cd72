package devtools

import (
	"math"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	readingWPM  = 200
	speakingWPM = 130
)

var (
	sentenceEnd = regexp.MustCompile(`[.!?]+(\s|$)`)
	paragraphs  = regexp.MustCompile(`\n\s*\n`)
)

// stopWords are ignored by the keyword density list.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true, "has": true,
	"have": true, "he": true, "her": true, "his": true, "i": true, "in": true,
	"is": true, "it": true, "its": true, "of": true, "on": true, "or": true,
	"she": true, "that": true, "the": true, "their": true, "they": true,
	"this": true, "to": true, "was": true, "we": true, "were": true, "will": true,
	"with": true, "you": true,
}

// WordFrequency is one row of the keyword list.
type WordFrequency struct {
	Word    string  `json:"word"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// WordCountResult is the output of the word counter.
type WordCountResult struct {
	Words              int             `json:"words"`
	Characters         int             `json:"characters"`
	CharactersNoSpaces int             `json:"characters_no_spaces"`
	Sentences          int             `json:"sentences"`
	Paragraphs         int             `json:"paragraphs"`
	Lines              int             `json:"lines"`
	UniqueWords        int             `json:"unique_words"`
	AvgWordLength      float64         `json:"avg_word_length"`
	ReadingMinutes     float64         `json:"reading_minutes"`
	SpeakingMinutes    float64         `json:"speaking_minutes"`
	TopWords           []WordFrequency `json:"top_words"`
}

// WordCount analyses text. Characters are counted as Unicode code points.
func WordCount(text string, top int) *WordCountResult {
	res := &WordCountResult{TopWords: []WordFrequency{}}
	res.Characters = utf8.RuneCountInString(text)
	for _, r := range text {
		if !unicode.IsSpace(r) {
			res.CharactersNoSpaces++
		}
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return res
	}

	words := strings.Fields(trimmed)
	res.Words = len(words)
	res.Lines = strings.Count(trimmed, "\n") + 1
	res.Paragraphs = len(paragraphs.Split(trimmed, -1))
	res.Sentences = len(sentenceEnd.FindAllStringIndex(trimmed, -1))
	if res.Sentences == 0 {
		res.Sentences = 1
	}

	counts := map[string]int{}
	letters := 0
	for _, w := range words {
		w = strings.ToLower(strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		}))
		if w == "" {
			continue
		}
		letters += utf8.RuneCountInString(w)
		counts[w]++
	}
	res.UniqueWords = len(counts)
	if len(counts) > 0 {
		total := 0
		for _, c := range counts {
			total += c
		}
		res.AvgWordLength = float64(letters) / float64(total)
	}
	res.ReadingMinutes = math.Ceil(float64(res.Words)/readingWPM*10) / 10
	res.SpeakingMinutes = math.Ceil(float64(res.Words)/speakingWPM*10) / 10

	for w, c := range counts {
		if stopWords[w] {
			continue
		}
		res.TopWords = append(res.TopWords, WordFrequency{
			Word:    w,
			Count:   c,
			Percent: float64(c) / float64(res.Words) * 100,
		})
	}
	slices.SortFunc(res.TopWords, func(a, b WordFrequency) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Word, b.Word)
	})
	if top > 0 && len(res.TopWords) > top {
		res.TopWords = res.TopWords[:top]
	}
	return res
}
