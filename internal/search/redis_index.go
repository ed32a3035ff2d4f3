package search

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/redis/go-redis/v9"
)

const (
	tokenKeyPrefix = "search:token:"
	docKeyPrefix   = "search:doc:"

	// minPrefixLen keeps single-letter tokens out of the index.
	minPrefixLen = 2
	maxPrefixLen = 12
)

// RedisIndex is an inverted index over username and description tokens.
// Each word prefix maps to a set of user IDs; a query term matches users
// whose profile contains a word starting with that term.
type RedisIndex struct {
	rdb *redis.Client
}

// NewRedisIndex returns an Indexer backed by the given Redis client.
func NewRedisIndex(rdb *redis.Client) *RedisIndex {
	return &RedisIndex{rdb: rdb}
}

func tokenKey(token string) string {
	return tokenKeyPrefix + token
}

func docKey(userID uint) string {
	return fmt.Sprintf("%s%d", docKeyPrefix, userID)
}

// tokenize splits text into lowercase word prefixes.
func tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	seen := make(map[string]struct{})
	var tokens []string
	for _, w := range words {
		runes := []rune(w)
		limit := len(runes)
		if limit > maxPrefixLen {
			limit = maxPrefixLen
		}
		for i := minPrefixLen; i <= limit; i++ {
			p := string(runes[:i])
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// queryTerms normalizes a search query into lookup terms.
func queryTerms(query string) []string {
	words := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	var terms []string
	for _, w := range words {
		runes := []rune(w)
		if len(runes) < minPrefixLen {
			continue
		}
		if len(runes) > maxPrefixLen {
			runes = runes[:maxPrefixLen]
		}
		terms = append(terms, string(runes))
	}
	return terms
}

// Index upserts the user's tokens. The previous token set is kept per user
// so stale tokens from an earlier profile version are removed first.
func (ix *RedisIndex) Index(ctx context.Context, userID uint, username, description string) error {
	if err := ix.Remove(ctx, userID); err != nil {
		return err
	}

	tokens := tokenize(username + " " + description)
	if len(tokens) == 0 {
		return nil
	}

	member := strconv.FormatUint(uint64(userID), 10)
	pipe := ix.rdb.TxPipeline()
	for _, tok := range tokens {
		pipe.SAdd(ctx, tokenKey(tok), member)
	}
	pipe.SAdd(ctx, docKey(userID), toAnySlice(tokens)...)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("search index user %d: %w", userID, err)
	}
	return nil
}

// Remove deletes the user from every token set it was indexed under.
func (ix *RedisIndex) Remove(ctx context.Context, userID uint) error {
	tokens, err := ix.rdb.SMembers(ctx, docKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("search doc lookup %d: %w", userID, err)
	}
	if len(tokens) == 0 {
		return nil
	}

	member := strconv.FormatUint(uint64(userID), 10)
	pipe := ix.rdb.TxPipeline()
	for _, tok := range tokens {
		pipe.SRem(ctx, tokenKey(tok), member)
	}
	pipe.Del(ctx, docKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("search remove user %d: %w", userID, err)
	}
	return nil
}

// Search intersects the token sets of every query term and pages through
// the result in ascending user ID order.
func (ix *RedisIndex) Search(ctx context.Context, query string, page, perPage int) ([]uint, int, error) {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return nil, 0, nil
	}

	keys := make([]string, len(terms))
	for i, t := range terms {
		keys[i] = tokenKey(t)
	}

	members, err := ix.rdb.SInter(ctx, keys...).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("search query %q: %w", query, err)
	}

	ids := make([]uint, 0, len(members))
	for _, m := range members {
		n, err := strconv.ParseUint(m, 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(n))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	total := len(ids)
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= total {
		return []uint{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return ids[start:end], total, nil
}

func toAnySlice(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
