package suggest

import (
	"math"
	"sync"

	"github.com/bastiangx/wordchain/pkg/score"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// ObscurityCache keeps recently computed word obscurity scores.
// The least recently used entry is evicted once maxWords is reached.
type ObscurityCache struct {
	scores   *simplelru.LRU[string, float64]
	hits     int64
	maxWords int
	weights  score.WordWeights
	mu       sync.Mutex
}

func NewObscurityCache(maxWords int, weights score.WordWeights) *ObscurityCache {
	if maxWords <= 0 {
		maxWords = 1
	}
	scores, err := simplelru.NewLRU(maxWords, func(word string, _ float64) {
		log.Debugf("Evicted word '%s' from obscurity cache", word)
	})
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &ObscurityCache{
		scores:   scores,
		maxWords: maxWords,
		weights:  weights,
	}
}

// Get returns the obscurity of word, computing and caching it on a miss.
func (oc *ObscurityCache) Get(word string) float64 {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	if s, ok := oc.scores.Get(word); ok {
		oc.hits++
		return s
	}

	s := score.WordObscurity(word, oc.weights)
	oc.scores.Add(word, s)
	return s
}

// Max returns the highest obscurity among words, 0 for none.
func (oc *ObscurityCache) Max(words []string) float64 {
	best := 0.0
	for _, w := range words {
		best = math.Max(best, oc.Get(w))
	}
	return best
}

func (oc *ObscurityCache) Stats() map[string]int {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	return map[string]int{
		"obscurityCacheWords": oc.scores.Len(),
		"maxCachedWords":      oc.maxWords,
		"obscurityCacheHits":  int(oc.hits),
	}
}
