package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
)

var errStoreDown = errors.New("store unavailable")

// memDB хранит состояние всех фейковых репозиториев. Каждая операция
// записи проверяет всё заранее и применяется целиком, как транзакция.
type memDB struct {
	mu            sync.Mutex
	seq           int64
	clock         time.Time
	students      map[int64]*models.Student
	admins        map[int64]*models.Administrator
	listings      map[int64]*models.Listing
	chats         map[int64]*models.Chat
	participants  []models.ChatParticipant
	messages      []models.Message
	ratings       []models.Rating
	notifications []models.Notification
	reports       map[int64]*models.Report

	failNotificationInsert bool
}

func newMemDB() *memDB {
	return &memDB{
		clock:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		students: map[int64]*models.Student{},
		admins:   map[int64]*models.Administrator{},
		listings: map[int64]*models.Listing{},
		chats:    map[int64]*models.Chat{},
		reports:  map[int64]*models.Report{},
	}
}

func (db *memDB) nextID() int64 {
	db.seq++
	return db.seq
}

func (db *memDB) tick() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

func (db *memDB) addStudent(apiKey string) *models.Student {
	db.mu.Lock()
	defer db.mu.Unlock()
	s := &models.Student{ID: db.nextID(), Email: apiKey + "@inacap.cl", APIKey: apiKey, Verified: true}
	db.students[s.ID] = s
	return s
}

func (db *memDB) addAdmin(apiKey string) *models.Administrator {
	db.mu.Lock()
	defer db.mu.Unlock()
	a := &models.Administrator{ID: db.nextID(), Name: "Admin", APIKey: apiKey}
	db.admins[a.ID] = a
	return a
}

func (db *memDB) addListing(owner int64) *models.Listing {
	db.mu.Lock()
	defer db.mu.Unlock()
	l := &models.Listing{ID: db.nextID(), Title: "Guitarra", Skill: 1, StudentID: owner, Active: true, CreatedAt: db.tick()}
	db.listings[l.ID] = l
	return l
}

func (db *memDB) commitNotifications(notifications []models.Notification) error {
	for _, n := range notifications {
		if !n.Type.Valid() {
			return errors.New("notification type violates check constraint")
		}
	}
	if db.failNotificationInsert {
		return errStoreDown
	}
	for i := range notifications {
		notifications[i].ID = db.nextID()
		notifications[i].CreatedAt = db.tick()
		db.notifications = append(db.notifications, notifications[i])
	}
	return nil
}

// notificationsFor возвращает копию уведомлений студента.
func (db *memDB) notificationsFor(studentID int64) []models.Notification {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []models.Notification
	for _, n := range db.notifications {
		if n.StudentID == studentID {
			out = append(out, n)
		}
	}
	return out
}

func (db *memDB) countChats() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.chats)
}

func (db *memDB) countRatings() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.ratings)
}

func (db *memDB) countMessages() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.messages)
}

type memStudents struct{ db *memDB }

func (r memStudents) GetByAPIKey(_ context.Context, apiKey string) (*models.Student, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, s := range r.db.students {
		if s.APIKey == apiKey {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repository.ErrStudentNotFound
}

type memAdmins struct{ db *memDB }

func (r memAdmins) GetByAPIKey(_ context.Context, apiKey string) (*models.Administrator, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.admins {
		if a.APIKey == apiKey {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrAdministratorNotFound
}

type memListings struct{ db *memDB }

func (r memListings) GetByID(_ context.Context, id int64) (*models.Listing, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	l, ok := r.db.listings[id]
	if !ok {
		return nil, repository.ErrListingNotFound
	}
	cp := *l
	return &cp, nil
}

type memChats struct{ db *memDB }

func (r memChats) Create(_ context.Context, chat *models.Chat, participants []models.ChatParticipant, notifications []models.Notification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, n := range notifications {
		if !n.Type.Valid() || r.db.failNotificationInsert {
			return errStoreDown
		}
	}

	chat.ID = r.db.nextID()
	chat.StartedAt = r.db.tick()
	cp := *chat
	r.db.chats[chat.ID] = &cp

	seen := map[int64]bool{}
	for i := range participants {
		participants[i].ChatID = chat.ID
		if seen[participants[i].StudentID] {
			continue
		}
		seen[participants[i].StudentID] = true
		participants[i].ID = r.db.nextID()
		r.db.participants = append(r.db.participants, participants[i])
	}

	chatID := chat.ID
	for i := range notifications {
		notifications[i].ChatID = &chatID
	}
	return r.db.commitNotifications(notifications)
}

func (r memChats) GetDetail(_ context.Context, id int64) (*models.ChatDetail, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	chat, ok := r.db.chats[id]
	if !ok {
		return nil, repository.ErrChatNotFound
	}
	detail := &models.ChatDetail{Chat: *chat, Participants: []models.ChatParticipant{}, Messages: []models.Message{}}
	for _, p := range r.db.participants {
		if p.ChatID == id {
			detail.Participants = append(detail.Participants, p)
		}
	}
	for _, m := range r.db.messages {
		if m.ChatID == id {
			detail.Messages = append(detail.Messages, m)
		}
	}
	return detail, nil
}

func (r memChats) ListByStudent(_ context.Context, studentID int64) ([]models.Chat, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	chats := []models.Chat{}
	for _, p := range r.db.participants {
		if p.StudentID == studentID {
			chats = append(chats, *r.db.chats[p.ChatID])
		}
	}
	sort.Slice(chats, func(i, j int) bool { return chats[i].StartedAt.After(chats[j].StartedAt) })
	return chats, nil
}

func (r memChats) MarkCompleted(_ context.Context, chatID int64, notifications []models.Notification) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	chat, ok := r.db.chats[chatID]
	if !ok || chat.Completed {
		return false, nil
	}
	if r.db.failNotificationInsert {
		return false, errStoreDown
	}
	if err := r.db.commitNotifications(notifications); err != nil {
		return false, err
	}
	chat.Completed = true
	return true, nil
}

type memMessages struct{ db *memDB }

func (r memMessages) Create(_ context.Context, msg *models.Message, notifications []models.Notification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.db.failNotificationInsert {
		return errStoreDown
	}
	msg.ID = r.db.nextID()
	msg.SentAt = r.db.tick()
	if err := r.db.commitNotifications(notifications); err != nil {
		return err
	}
	r.db.messages = append(r.db.messages, *msg)
	return nil
}

type memRatings struct{ db *memDB }

func (r memRatings) Create(_ context.Context, rating *models.Rating, notifications []models.Notification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.ratings {
		if existing.ChatID == rating.ChatID && existing.EvaluatorID == rating.EvaluatorID {
			return repository.ErrRatingExists
		}
	}
	if r.db.failNotificationInsert {
		return errStoreDown
	}

	rating.ID = r.db.nextID()
	rating.CreatedAt = r.db.tick()
	ratingID := rating.ID
	for i := range notifications {
		notifications[i].RatingID = &ratingID
	}
	if err := r.db.commitNotifications(notifications); err != nil {
		return err
	}
	r.db.ratings = append(r.db.ratings, *rating)
	for i := range r.db.participants {
		p := &r.db.participants[i]
		if p.ChatID == rating.ChatID && p.StudentID == rating.EvaluatorID {
			p.Rated = true
		}
	}
	return nil
}

func (r memRatings) GetByChatAndEvaluator(_ context.Context, chatID, evaluatorID int64) (*models.Rating, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.ratings {
		if existing.ChatID == chatID && existing.EvaluatorID == evaluatorID {
			cp := existing
			return &cp, nil
		}
	}
	return nil, nil
}

type memNotifications struct{ db *memDB }

func (r memNotifications) ListByStudent(_ context.Context, studentID int64) ([]models.Notification, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.Notification{}
	for i := len(r.db.notifications) - 1; i >= 0; i-- {
		if r.db.notifications[i].StudentID == studentID {
			out = append(out, r.db.notifications[i])
		}
	}
	return out, nil
}

func (r memNotifications) MarkAsRead(_ context.Context, id, studentID int64) (*models.Notification, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i := range r.db.notifications {
		n := &r.db.notifications[i]
		if n.ID == id && n.StudentID == studentID {
			n.Read = true
			cp := *n
			return &cp, nil
		}
	}
	return nil, repository.ErrNotificationNotFound
}

func (r memNotifications) MarkAllAsRead(_ context.Context, studentID int64) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for i := range r.db.notifications {
		if r.db.notifications[i].StudentID == studentID && !r.db.notifications[i].Read {
			r.db.notifications[i].Read = true
			n++
		}
	}
	return n, nil
}

func (r memNotifications) CountUnread(_ context.Context, studentID int64) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	count := 0
	for _, n := range r.db.notifications {
		if n.StudentID == studentID && !n.Read {
			count++
		}
	}
	return count, nil
}

type pushed struct {
	studentID int64
	event     string
}

type recordingPusher struct {
	mu     sync.Mutex
	events []pushed
}

func (p *recordingPusher) BroadcastToStudent(studentID int64, event string, _ interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, pushed{studentID: studentID, event: event})
}

func (p *recordingPusher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

// exchangeEnv собирает сервисы обмена поверх memDB.
type exchangeEnv struct {
	db            *memDB
	pusher        *recordingPusher
	identity      *Identity
	notifications *NotificationService
	chats         *ChatService
	messages      *MessageService
	ratings       *RatingService
}

func newExchangeEnv() *exchangeEnv {
	db := newMemDB()
	pusher := &recordingPusher{}
	identity := NewIdentity(memStudents{db}, memAdmins{db}, memListings{db})
	notifier := NewNotificationService(identity, memNotifications{db}, pusher)

	return &exchangeEnv{
		db:            db,
		pusher:        pusher,
		identity:      identity,
		notifications: notifier,
		chats:         NewChatService(identity, memChats{db}, notifier),
		messages:      NewMessageService(identity, memChats{db}, memMessages{db}, notifier),
		ratings:       NewRatingService(identity, memChats{db}, memRatings{db}, notifier),
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
