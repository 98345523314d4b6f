package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shinyyama/skillswap-backend/internal/model"
	"github.com/shinyyama/skillswap-backend/internal/repository"
	"gorm.io/gorm"
)

type fakeUsers struct {
	mu         sync.Mutex
	rows       map[string]*model.User
	upserts    int
	lastFilter repository.UserFilter
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{rows: map[string]*model.User{}}
	for _, u := range users {
		f.rows[u.ID] = u
	}
	return f
}

func (f *fakeUsers) SetDB(*gorm.DB) {}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) List(_ context.Context, flt repository.UserFilter) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = flt
	ids := make([]string, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := []model.User{}
	for _, id := range ids {
		u := f.rows[id]
		if flt.Search != "" && !userMatches(u, strings.ToLower(flt.Search)) {
			continue
		}
		out = append(out, *u)
	}
	if flt.Offset >= len(out) {
		return []model.User{}, nil
	}
	out = out[flt.Offset:]
	if flt.Limit > 0 && flt.Limit < len(out) {
		out = out[:flt.Limit]
	}
	return out, nil
}

func userMatches(u *model.User, needle string) bool {
	for _, v := range []*string{u.FirstName, u.LastName, u.Location} {
		if v != nil && strings.Contains(strings.ToLower(*v), needle) {
			return true
		}
	}
	return false
}

func (f *fakeUsers) Upsert(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	cur, ok := f.rows[u.ID]
	if !ok {
		cp := *u
		f.rows[u.ID] = &cp
		return nil
	}
	merge(&cur.Email, u.Email)
	merge(&cur.FirstName, u.FirstName)
	merge(&cur.LastName, u.LastName)
	merge(&cur.ProfileImageURL, u.ProfileImageURL)
	merge(&cur.Bio, u.Bio)
	merge(&cur.Location, u.Location)
	return nil
}

func merge(dst **string, src *string) {
	if src != nil {
		*dst = src
	}
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) (*model.User, error) {
	f.mu.Lock()
	u, ok := f.rows[id]
	if !ok {
		f.mu.Unlock()
		return nil, gorm.ErrRecordNotFound
	}
	set := func(dst **string, v interface{}) {
		if s, ok := v.(string); ok {
			*dst = &s
		} else {
			*dst = nil
		}
	}
	for col, v := range fields {
		switch col {
		case "first_name":
			set(&u.FirstName, v)
		case "last_name":
			set(&u.LastName, v)
		case "bio":
			set(&u.Bio, v)
		case "location":
			set(&u.Location, v)
		case "profile_image_url":
			set(&u.ProfileImageURL, v)
		}
	}
	f.mu.Unlock()
	return f.FindByID(ctx, id)
}

type fakeCategories struct {
	rows map[uint64]model.SkillCategory
}

func (f *fakeCategories) SetDB(*gorm.DB) {}

func (f *fakeCategories) List(context.Context) ([]model.SkillCategory, error) {
	out := make([]model.SkillCategory, 0, len(f.rows))
	for _, c := range f.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategories) FindByID(_ context.Context, id uint64) (*model.SkillCategory, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (f *fakeCategories) SeedDefaults(_ context.Context, force bool) (int64, error) {
	if len(f.rows) > 0 && !force {
		return 0, nil
	}
	var n int64
	for i, c := range repository.DefaultCategories() {
		id := uint64(i + 1)
		if _, ok := f.rows[id]; ok {
			continue
		}
		c.ID = id
		f.rows[id] = c
		n++
	}
	return n, nil
}

type fakeSkills struct {
	rows   map[uint64]*model.Skill
	nextID uint64
}

func newFakeSkills(skills ...*model.Skill) *fakeSkills {
	f := &fakeSkills{rows: map[uint64]*model.Skill{}}
	for _, s := range skills {
		f.rows[s.ID] = s
		if s.ID > f.nextID {
			f.nextID = s.ID
		}
	}
	return f
}

func (f *fakeSkills) SetDB(*gorm.DB) {}

func (f *fakeSkills) List(_ context.Context, flt repository.SkillFilter) ([]model.Skill, error) {
	var out []model.Skill
	for _, s := range f.rows {
		if !s.IsActive {
			continue
		}
		if flt.Type != nil && s.Type != *flt.Type {
			continue
		}
		if flt.CategoryID != nil && (s.CategoryID == nil || *s.CategoryID != *flt.CategoryID) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSkills) FindByID(_ context.Context, id uint64) (*model.Skill, error) {
	s, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSkills) ListByUser(_ context.Context, userID string) ([]model.Skill, error) {
	var out []model.Skill
	for _, s := range f.rows {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSkills) Create(_ context.Context, s *model.Skill) error {
	f.nextID++
	s.ID = f.nextID
	cp := *s
	f.rows[s.ID] = &cp
	return nil
}

func (f *fakeSkills) Update(_ context.Context, id uint64, fields map[string]interface{}) error {
	s, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for col, v := range fields {
		switch col {
		case "title":
			s.Title = v.(string)
		case "description":
			s.Description = v.(string)
		case "level":
			s.Level = v.(model.SkillLevel)
		case "type":
			s.Type = v.(model.SkillType)
		case "category_id":
			id := v.(uint64)
			s.CategoryID = &id
		case "is_active":
			s.IsActive = v.(bool)
		}
	}
	return nil
}

func (f *fakeSkills) Deactivate(_ context.Context, id uint64) error {
	s, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.IsActive = false
	return nil
}

type fakeRequests struct {
	skills        *fakeSkills
	rows          map[uint64]*model.ExchangeRequest
	nextID        uint64
	notifications []model.Notification
	// raceTo, when set, moves the row to this status right before a transition is applied.
	raceTo model.ExchangeStatus
}

func newFakeRequests(skills *fakeSkills) *fakeRequests {
	return &fakeRequests{skills: skills, rows: map[uint64]*model.ExchangeRequest{}}
}

func (f *fakeRequests) SetDB(*gorm.DB) {}

func (f *fakeRequests) put(r model.ExchangeRequest) *model.ExchangeRequest {
	if r.ID == 0 {
		f.nextID++
		r.ID = f.nextID
	}
	f.rows[r.ID] = &r
	return &r
}

func (f *fakeRequests) ListByParticipant(ctx context.Context, uid string, status *model.ExchangeStatus) ([]model.ExchangeRequest, error) {
	var out []model.ExchangeRequest
	for id := range f.rows {
		r, _ := f.FindByID(ctx, id)
		if !r.IsParticipant(uid) {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRequests) FindByID(ctx context.Context, id uint64) (*model.ExchangeRequest, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	if sk, err := f.skills.FindByID(ctx, r.SkillID); err == nil {
		cp.Skill = sk
	}
	return &cp, nil
}

func (f *fakeRequests) Create(_ context.Context, req *model.ExchangeRequest, notify *model.Notification) error {
	req.Status = model.ExchangeStatusPending
	saved := f.put(*req)
	req.ID = saved.ID
	if notify != nil {
		notify.ExchangeRequestID = &req.ID
		f.notifications = append(f.notifications, *notify)
	}
	return nil
}

func (f *fakeRequests) TransitionStatus(_ context.Context, id uint64, from, to model.ExchangeStatus, notify *model.Notification) (bool, error) {
	r, ok := f.rows[id]
	if !ok {
		return false, nil
	}
	if f.raceTo != "" {
		r.Status = f.raceTo
	}
	if r.Status != from {
		return false, nil
	}
	r.Status = to
	if notify != nil {
		f.notifications = append(f.notifications, *notify)
	}
	return true, nil
}

func (f *fakeRequests) DeleteIfPending(_ context.Context, id uint64, requesterID string) (int64, error) {
	r, ok := f.rows[id]
	if !ok || r.RequesterID != requesterID || r.Status != model.ExchangeStatusPending {
		return 0, nil
	}
	delete(f.rows, id)
	return 1, nil
}

type fakeMessages struct {
	sent []model.Message
}

func (f *fakeMessages) SetDB(*gorm.DB) {}

func (f *fakeMessages) ListBetween(_ context.Context, uid, otherID string) ([]model.Message, error) {
	var out []model.Message
	for _, m := range f.sent {
		if (m.SenderID == uid && m.ReceiverID == otherID) || (m.SenderID == otherID && m.ReceiverID == uid) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessages) ListConversations(_ context.Context, uid string) ([]model.Conversation, error) {
	index := map[string]int{}
	var convs []model.Conversation
	for i := len(f.sent) - 1; i >= 0; i-- {
		m := f.sent[i]
		if m.SenderID != uid && m.ReceiverID != uid {
			continue
		}
		other := m.Correspondent(uid)
		pos, ok := index[other]
		if !ok {
			pos = len(convs)
			index[other] = pos
			convs = append(convs, model.Conversation{User: &model.User{ID: other}, LastMessage: m})
		}
		if m.ReceiverID == uid && !m.IsRead {
			convs[pos].UnreadCount++
		}
	}
	return convs, nil
}

func (f *fakeMessages) Create(_ context.Context, msg *model.Message) error {
	msg.ID = uint64(len(f.sent) + 1)
	f.sent = append(f.sent, *msg)
	return nil
}

func (f *fakeMessages) MarkRead(_ context.Context, receiverID, senderID string) (int64, error) {
	var n int64
	for i := range f.sent {
		m := &f.sent[i]
		if m.ReceiverID == receiverID && m.SenderID == senderID && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

type fakeRatings struct {
	rows          []model.Rating
	notifications []model.Notification
}

func (f *fakeRatings) SetDB(*gorm.DB) {}

func (f *fakeRatings) ListByRatedUser(_ context.Context, userID string) ([]model.Rating, error) {
	var out []model.Rating
	for _, r := range f.rows {
		if r.RatedUserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRatings) Create(_ context.Context, rt *model.Rating, notify *model.Notification) error {
	for _, r := range f.rows {
		if r.RaterID == rt.RaterID && r.ExchangeRequestID != nil && rt.ExchangeRequestID != nil &&
			*r.ExchangeRequestID == *rt.ExchangeRequestID {
			return gorm.ErrDuplicatedKey
		}
	}
	rt.ID = uint64(len(f.rows) + 1)
	f.rows = append(f.rows, *rt)
	if notify != nil {
		f.notifications = append(f.notifications, *notify)
	}
	return nil
}

func (f *fakeRatings) Summary(_ context.Context, userID string) (repository.RatingSummary, error) {
	var sum repository.RatingSummary
	total := 0
	for _, r := range f.rows {
		if r.RatedUserID == userID {
			sum.Count++
			total += r.Rating
		}
	}
	if sum.Count > 0 {
		sum.Average = float64(total) / float64(sum.Count)
	}
	return sum, nil
}
