package service

import (
	"context"
	"io"
	"time"

	"instaclone/internal/models"
)

type graphRepoStub struct {
	followFn           func(context.Context, uint, uint) error
	unfollowFn         func(context.Context, uint, uint) error
	isFollowingFn      func(context.Context, uint, uint) (bool, error)
	followingIDsFn     func(context.Context, uint) ([]uint, error)
	followerIDsFn      func(context.Context, uint) ([]uint, error)
	countsFn           func(context.Context, uint) (int64, int64, error)
	blockFn            func(context.Context, uint, uint) error
	unblockFn          func(context.Context, uint, uint) error
	hasBlockFn         func(context.Context, uint, uint) (bool, error)
	isBlockedEitherFn  func(context.Context, uint, uint) (bool, error)
	blockedEitherIDsFn func(context.Context, uint) ([]uint, error)
	deleteEdgesForFn   func(context.Context, uint) error
	mutualCandidatesFn func(context.Context, uint) ([]models.MutualEdge, error)
}

func (s *graphRepoStub) Follow(ctx context.Context, a, b uint) error { return s.followFn(ctx, a, b) }
func (s *graphRepoStub) Unfollow(ctx context.Context, a, b uint) error {
	return s.unfollowFn(ctx, a, b)
}
func (s *graphRepoStub) IsFollowing(ctx context.Context, a, b uint) (bool, error) {
	return s.isFollowingFn(ctx, a, b)
}
func (s *graphRepoStub) FollowingIDs(ctx context.Context, id uint) ([]uint, error) {
	return s.followingIDsFn(ctx, id)
}
func (s *graphRepoStub) FollowerIDs(ctx context.Context, id uint) ([]uint, error) {
	return s.followerIDsFn(ctx, id)
}
func (s *graphRepoStub) Counts(ctx context.Context, id uint) (int64, int64, error) {
	return s.countsFn(ctx, id)
}
func (s *graphRepoStub) Block(ctx context.Context, a, b uint) error   { return s.blockFn(ctx, a, b) }
func (s *graphRepoStub) Unblock(ctx context.Context, a, b uint) error { return s.unblockFn(ctx, a, b) }
func (s *graphRepoStub) HasBlock(ctx context.Context, a, b uint) (bool, error) {
	return s.hasBlockFn(ctx, a, b)
}
func (s *graphRepoStub) IsBlockedEither(ctx context.Context, a, b uint) (bool, error) {
	return s.isBlockedEitherFn(ctx, a, b)
}
func (s *graphRepoStub) BlockedEitherIDs(ctx context.Context, id uint) ([]uint, error) {
	return s.blockedEitherIDsFn(ctx, id)
}
func (s *graphRepoStub) DeleteEdgesFor(ctx context.Context, id uint) error {
	return s.deleteEdgesForFn(ctx, id)
}
func (s *graphRepoStub) MutualCandidates(ctx context.Context, id uint) ([]models.MutualEdge, error) {
	return s.mutualCandidatesFn(ctx, id)
}

func noopGraphRepo() *graphRepoStub {
	return &graphRepoStub{
		followFn:           func(context.Context, uint, uint) error { return nil },
		unfollowFn:         func(context.Context, uint, uint) error { return nil },
		isFollowingFn:      func(context.Context, uint, uint) (bool, error) { return false, nil },
		followingIDsFn:     func(context.Context, uint) ([]uint, error) { return nil, nil },
		followerIDsFn:      func(context.Context, uint) ([]uint, error) { return nil, nil },
		countsFn:           func(context.Context, uint) (int64, int64, error) { return 0, 0, nil },
		blockFn:            func(context.Context, uint, uint) error { return nil },
		unblockFn:          func(context.Context, uint, uint) error { return nil },
		hasBlockFn:         func(context.Context, uint, uint) (bool, error) { return false, nil },
		isBlockedEitherFn:  func(context.Context, uint, uint) (bool, error) { return false, nil },
		blockedEitherIDsFn: func(context.Context, uint) ([]uint, error) { return nil, nil },
		deleteEdgesForFn:   func(context.Context, uint) error { return nil },
		mutualCandidatesFn: func(context.Context, uint) ([]models.MutualEdge, error) { return nil, nil },
	}
}

type userRepoStub struct {
	createFn                func(context.Context, *models.User) error
	getByIDFn               func(context.Context, uint) (*models.User, error)
	getByUsernameFn         func(context.Context, string) (*models.User, error)
	getByEmailFn            func(context.Context, string) (*models.User, error)
	getByIDsFn              func(context.Context, []uint) ([]models.User, error)
	updateFn                func(context.Context, *models.User) error
	deleteFn                func(context.Context, uint) error
	setNotRecommendFn       func(context.Context, uint, bool) error
	setNotificationReadAtFn func(context.Context, uint, time.Time) error
	setMessageReadAtFn      func(context.Context, uint, time.Time) error
	setMessageSentAtFn      func(context.Context, uint, time.Time) error
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, u string) (*models.User, error) {
	return s.getByUsernameFn(ctx, u)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, e string) (*models.User, error) {
	return s.getByEmailFn(ctx, e)
}
func (s *userRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error { return s.updateFn(ctx, u) }
func (s *userRepoStub) Delete(ctx context.Context, id uint) error        { return s.deleteFn(ctx, id) }
func (s *userRepoStub) SetNotRecommend(ctx context.Context, id uint, v bool) error {
	return s.setNotRecommendFn(ctx, id, v)
}
func (s *userRepoStub) SetNotificationReadAt(ctx context.Context, id uint, t time.Time) error {
	return s.setNotificationReadAtFn(ctx, id, t)
}
func (s *userRepoStub) SetMessageReadAt(ctx context.Context, id uint, t time.Time) error {
	return s.setMessageReadAtFn(ctx, id, t)
}
func (s *userRepoStub) SetMessageSentAt(ctx context.Context, id uint, t time.Time) error {
	return s.setMessageSentAtFn(ctx, id, t)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:                func(context.Context, *models.User) error { return nil },
		getByIDFn:               func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn:         func(context.Context, string) (*models.User, error) { return nil, nil },
		getByEmailFn:            func(context.Context, string) (*models.User, error) { return nil, nil },
		getByIDsFn:              func(context.Context, []uint) ([]models.User, error) { return nil, nil },
		updateFn:                func(context.Context, *models.User) error { return nil },
		deleteFn:                func(context.Context, uint) error { return nil },
		setNotRecommendFn:       func(context.Context, uint, bool) error { return nil },
		setNotificationReadAtFn: func(context.Context, uint, time.Time) error { return nil },
		setMessageReadAtFn:      func(context.Context, uint, time.Time) error { return nil },
		setMessageSentAtFn:      func(context.Context, uint, time.Time) error { return nil },
	}
}

type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint, uint) (*models.Post, error)
	getByAuthorFn    func(context.Context, uint, uint) ([]models.Post, error)
	feedFn           func(context.Context, []uint, uint, int, int) ([]models.Post, error)
	deleteFn         func(context.Context, uint) error
	deleteByAuthorFn func(context.Context, uint) ([]string, error)
	togglePrivacyFn  func(context.Context, uint) (bool, error)
	toggleLikeFn     func(context.Context, uint, uint) (bool, error)
	likedByFn        func(context.Context, uint, int) ([]models.User, error)
	toggleBookmarkFn func(context.Context, uint, uint) (bool, error)
	bookmarksFn      func(context.Context, uint) ([]models.Post, error)
	createReportFn   func(context.Context, *models.Report) error
}

func (s *postRepoStub) Create(ctx context.Context, p *models.Post) error { return s.createFn(ctx, p) }
func (s *postRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *postRepoStub) GetByAuthor(ctx context.Context, authorID, viewerID uint) ([]models.Post, error) {
	return s.getByAuthorFn(ctx, authorID, viewerID)
}
func (s *postRepoStub) Feed(ctx context.Context, authorIDs []uint, viewerID uint, page, perPage int) ([]models.Post, error) {
	return s.feedFn(ctx, authorIDs, viewerID, page, perPage)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *postRepoStub) DeleteByAuthor(ctx context.Context, authorID uint) ([]string, error) {
	return s.deleteByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) TogglePrivacy(ctx context.Context, id uint) (bool, error) {
	return s.togglePrivacyFn(ctx, id)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	return s.toggleLikeFn(ctx, userID, postID)
}
func (s *postRepoStub) LikedBy(ctx context.Context, postID uint, limit int) ([]models.User, error) {
	return s.likedByFn(ctx, postID, limit)
}
func (s *postRepoStub) ToggleBookmark(ctx context.Context, userID, postID uint) (bool, error) {
	return s.toggleBookmarkFn(ctx, userID, postID)
}
func (s *postRepoStub) Bookmarks(ctx context.Context, userID uint) ([]models.Post, error) {
	return s.bookmarksFn(ctx, userID)
}
func (s *postRepoStub) CreateReport(ctx context.Context, r *models.Report) error {
	return s.createReportFn(ctx, r)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:         func(context.Context, *models.Post) error { return nil },
		getByIDFn:        func(_ context.Context, id, _ uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		getByAuthorFn:    func(context.Context, uint, uint) ([]models.Post, error) { return nil, nil },
		feedFn:           func(context.Context, []uint, uint, int, int) ([]models.Post, error) { return nil, nil },
		deleteFn:         func(context.Context, uint) error { return nil },
		deleteByAuthorFn: func(context.Context, uint) ([]string, error) { return nil, nil },
		togglePrivacyFn:  func(context.Context, uint) (bool, error) { return false, nil },
		toggleLikeFn:     func(context.Context, uint, uint) (bool, error) { return true, nil },
		likedByFn:        func(context.Context, uint, int) ([]models.User, error) { return nil, nil },
		toggleBookmarkFn: func(context.Context, uint, uint) (bool, error) { return true, nil },
		bookmarksFn:      func(context.Context, uint) ([]models.Post, error) { return nil, nil },
		createReportFn:   func(context.Context, *models.Report) error { return nil },
	}
}

type storyRepoStub struct {
	createFn            func(context.Context, *models.Story) error
	getByIDFn           func(context.Context, uint) (*models.Story, error)
	listByAuthorsFn     func(context.Context, []uint, int) ([]models.Story, error)
	listCreatedBeforeFn func(context.Context, time.Time) ([]models.Story, error)
	deleteByIDsFn       func(context.Context, []uint) error
	deleteByAuthorFn    func(context.Context, uint) ([]string, error)
}

func (s *storyRepoStub) Create(ctx context.Context, st *models.Story) error {
	return s.createFn(ctx, st)
}
func (s *storyRepoStub) GetByID(ctx context.Context, id uint) (*models.Story, error) {
	return s.getByIDFn(ctx, id)
}
func (s *storyRepoStub) ListByAuthors(ctx context.Context, ids []uint, limit int) ([]models.Story, error) {
	return s.listByAuthorsFn(ctx, ids, limit)
}
func (s *storyRepoStub) ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.Story, error) {
	return s.listCreatedBeforeFn(ctx, cutoff)
}
func (s *storyRepoStub) DeleteByIDs(ctx context.Context, ids []uint) error {
	return s.deleteByIDsFn(ctx, ids)
}
func (s *storyRepoStub) DeleteByAuthor(ctx context.Context, authorID uint) ([]string, error) {
	return s.deleteByAuthorFn(ctx, authorID)
}

func noopStoryRepo() *storyRepoStub {
	return &storyRepoStub{
		createFn:            func(context.Context, *models.Story) error { return nil },
		getByIDFn:           func(_ context.Context, id uint) (*models.Story, error) { return &models.Story{ID: id}, nil },
		listByAuthorsFn:     func(context.Context, []uint, int) ([]models.Story, error) { return nil, nil },
		listCreatedBeforeFn: func(context.Context, time.Time) ([]models.Story, error) { return nil, nil },
		deleteByIDsFn:       func(context.Context, []uint) error { return nil },
		deleteByAuthorFn:    func(context.Context, uint) ([]string, error) { return nil, nil },
	}
}

type notificationRepoStub struct {
	createFn          func(context.Context, *models.Notification) error
	listByRecipientFn func(context.Context, uint, int, int) ([]models.Notification, error)
	unreadCountFn     func(context.Context, uint, *time.Time) (int64, error)
	deleteByUserFn    func(context.Context, uint) error
}

func (s *notificationRepoStub) Create(ctx context.Context, n *models.Notification) error {
	return s.createFn(ctx, n)
}
func (s *notificationRepoStub) ListByRecipient(ctx context.Context, id uint, page, perPage int) ([]models.Notification, error) {
	return s.listByRecipientFn(ctx, id, page, perPage)
}
func (s *notificationRepoStub) UnreadCount(ctx context.Context, id uint, w *time.Time) (int64, error) {
	return s.unreadCountFn(ctx, id, w)
}
func (s *notificationRepoStub) DeleteByUser(ctx context.Context, id uint) error {
	return s.deleteByUserFn(ctx, id)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createFn:          func(context.Context, *models.Notification) error { return nil },
		listByRecipientFn: func(context.Context, uint, int, int) ([]models.Notification, error) { return nil, nil },
		unreadCountFn:     func(context.Context, uint, *time.Time) (int64, error) { return 0, nil },
		deleteByUserFn:    func(context.Context, uint) error { return nil },
	}
}

type messageRepoStub struct {
	createFn       func(context.Context, *models.Message) error
	conversationFn func(context.Context, uint, uint) ([]models.Message, error)
	markSeenFn     func(context.Context, uint, uint) error
	contactsFn     func(context.Context, uint) ([]models.Contact, error)
	unseenCountFn  func(context.Context, uint) (int64, error)
	deleteByUserFn func(context.Context, uint) error
}

func (s *messageRepoStub) Create(ctx context.Context, m *models.Message) error {
	return s.createFn(ctx, m)
}
func (s *messageRepoStub) Conversation(ctx context.Context, a, b uint) ([]models.Message, error) {
	return s.conversationFn(ctx, a, b)
}
func (s *messageRepoStub) MarkSeen(ctx context.Context, recipientID, senderID uint) error {
	return s.markSeenFn(ctx, recipientID, senderID)
}
func (s *messageRepoStub) Contacts(ctx context.Context, id uint) ([]models.Contact, error) {
	return s.contactsFn(ctx, id)
}
func (s *messageRepoStub) UnseenCount(ctx context.Context, id uint) (int64, error) {
	return s.unseenCountFn(ctx, id)
}
func (s *messageRepoStub) DeleteByUser(ctx context.Context, id uint) error {
	return s.deleteByUserFn(ctx, id)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:       func(context.Context, *models.Message) error { return nil },
		conversationFn: func(context.Context, uint, uint) ([]models.Message, error) { return nil, nil },
		markSeenFn:     func(context.Context, uint, uint) error { return nil },
		contactsFn:     func(context.Context, uint) ([]models.Contact, error) { return nil, nil },
		unseenCountFn:  func(context.Context, uint) (int64, error) { return 0, nil },
		deleteByUserFn: func(context.Context, uint) error { return nil },
	}
}

type commentRepoStub struct {
	createFn         func(context.Context, *models.Comment) error
	getByIDFn        func(context.Context, uint) (*models.Comment, error)
	listByPostFn     func(context.Context, uint, uint) ([]models.Comment, error)
	hideFn           func(context.Context, uint) error
	deleteByAuthorFn func(context.Context, uint) error
	toggleLikeFn     func(context.Context, uint, uint) (bool, error)
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID, viewerID uint) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID, viewerID)
}
func (s *commentRepoStub) Hide(ctx context.Context, id uint) error { return s.hideFn(ctx, id) }
func (s *commentRepoStub) DeleteByAuthor(ctx context.Context, authorID uint) error {
	return s.deleteByAuthorFn(ctx, authorID)
}
func (s *commentRepoStub) ToggleLike(ctx context.Context, userID, commentID uint) (bool, error) {
	return s.toggleLikeFn(ctx, userID, commentID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:         func(context.Context, *models.Comment) error { return nil },
		getByIDFn:        func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn:     func(context.Context, uint, uint) ([]models.Comment, error) { return nil, nil },
		hideFn:           func(context.Context, uint) error { return nil },
		deleteByAuthorFn: func(context.Context, uint) error { return nil },
		toggleLikeFn:     func(context.Context, uint, uint) (bool, error) { return true, nil },
	}
}

// storeStub implements storage.Store in memory.
type storeStub struct {
	saved   map[string]string
	deleted []string
}

func newStoreStub() *storeStub {
	return &storeStub{saved: map[string]string{}}
}

func (s *storeStub) Save(_ context.Context, key, _ string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.saved[key] = string(data)
	return nil
}

func (s *storeStub) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.saved, key)
	return nil
}

func (s *storeStub) URL(key string) string { return "/static/uploads/" + key }

type indexerStub struct {
	indexFn  func(context.Context, uint, string, string) error
	removeFn func(context.Context, uint) error
	searchFn func(context.Context, string, int, int) ([]uint, int, error)
}

func (s *indexerStub) Index(ctx context.Context, id uint, username, description string) error {
	return s.indexFn(ctx, id, username, description)
}
func (s *indexerStub) Remove(ctx context.Context, id uint) error { return s.removeFn(ctx, id) }
func (s *indexerStub) Search(ctx context.Context, query string, page, perPage int) ([]uint, int, error) {
	return s.searchFn(ctx, query, page, perPage)
}

func noopIndexer() *indexerStub {
	return &indexerStub{
		indexFn:  func(context.Context, uint, string, string) error { return nil },
		removeFn: func(context.Context, uint) error { return nil },
		searchFn: func(context.Context, string, int, int) ([]uint, int, error) { return nil, 0, nil },
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
