package service

import (
	"context"
	"math/rand"
	"sort"

	"instaclone/internal/models"
	"instaclone/internal/observability"
	"instaclone/internal/repository"
)

// RecommendService computes follow suggestions. Both strategies produce a
// deterministic result ordered by user ID; the shuffle applied for display
// is isolated in Shuffle so the core stays testable.
type RecommendService struct {
	graphRepo repository.GraphRepository
	userRepo  repository.UserRepository

	// shuffle randomizes presentation order. Overridable in tests.
	shuffle func(n int, swap func(i, j int))
}

// NewRecommendService returns a new RecommendService.
func NewRecommendService(graphRepo repository.GraphRepository, userRepo repository.UserRepository) *RecommendService {
	return &RecommendService{
		graphRepo: graphRepo,
		userRepo:  userRepo,
		shuffle:   rand.Shuffle,
	}
}

// FollowsYou suggests followers the user does not follow back. Users who
// opted out of recommendations and users with a block edge are excluded.
// The result is ordered by user ID.
func (s *RecommendService) FollowsYou(ctx context.Context, userID uint) ([]models.Recommendation, error) {
	observability.RecommendationRequests.WithLabelValues("follows_you").Inc()

	followerIDs, err := s.graphRepo.FollowerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(followerIDs) == 0 {
		return []models.Recommendation{}, nil
	}

	followingIDs, err := s.graphRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	following := toSet(followingIDs)

	blocked, err := s.blockedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	var candidateIDs []uint
	for _, id := range followerIDs {
		if _, ok := following[id]; ok {
			continue
		}
		if _, ok := blocked[id]; ok {
			continue
		}
		candidateIDs = append(candidateIDs, id)
	}

	users, err := s.userRepo.GetByIDs(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}

	recs := make([]models.Recommendation, 0, len(users))
	for _, u := range users {
		if u.NotRecommend {
			continue
		}
		recs = append(recs, models.Recommendation{User: u})
	}
	sortRecommendations(recs)
	return recs, nil
}

// ByMutual suggests users followed by people the user follows, with the
// mutual friends attached. Candidates with no mutual friend never appear.
// The result is ordered by user ID; mutual friends keep follow order.
func (s *RecommendService) ByMutual(ctx context.Context, userID uint) ([]models.Recommendation, error) {
	observability.RecommendationRequests.WithLabelValues("by_mutual").Inc()

	edges, err := s.graphRepo.MutualCandidates(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(edges) == 0 {
		return []models.Recommendation{}, nil
	}

	blocked, err := s.blockedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	mutualsByCandidate := make(map[uint][]uint)
	for _, e := range edges {
		if _, ok := blocked[e.CandidateID]; ok {
			continue
		}
		mutualsByCandidate[e.CandidateID] = append(mutualsByCandidate[e.CandidateID], e.MutualID)
	}
	if len(mutualsByCandidate) == 0 {
		return []models.Recommendation{}, nil
	}

	// Resolve every referenced user in one query
	idSet := make(map[uint]struct{})
	for cand, mutuals := range mutualsByCandidate {
		idSet[cand] = struct{}{}
		for _, m := range mutuals {
			idSet[m] = struct{}{}
		}
	}
	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	recs := make([]models.Recommendation, 0, len(mutualsByCandidate))
	for cand, mutualIDs := range mutualsByCandidate {
		candidate, ok := byID[cand]
		if !ok {
			continue // deleted account
		}
		if candidate.NotRecommend {
			continue
		}
		mutuals := make([]models.User, 0, len(mutualIDs))
		for _, m := range mutualIDs {
			if mu, ok := byID[m]; ok {
				mutuals = append(mutuals, mu)
			}
		}
		if len(mutuals) == 0 {
			continue
		}
		recs = append(recs, models.Recommendation{User: candidate, MutualFriends: mutuals})
	}
	sortRecommendations(recs)
	return recs, nil
}

// Shuffle randomizes the display order in place. Called at the handler
// boundary, never inside the strategies.
func (s *RecommendService) Shuffle(recs []models.Recommendation) {
	s.shuffle(len(recs), func(i, j int) {
		recs[i], recs[j] = recs[j], recs[i]
	})
}

func (s *RecommendService) blockedSet(ctx context.Context, userID uint) (map[uint]struct{}, error) {
	ids, err := s.graphRepo.BlockedEitherIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toSet(ids), nil
}

func sortRecommendations(recs []models.Recommendation) {
	sort.Slice(recs, func(i, j int) bool { return recs[i].User.ID < recs[j].User.ID })
}

func toSet(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
