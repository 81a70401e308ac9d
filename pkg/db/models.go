// pkg/db/models.go
package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GameType string

const (
	GameTypeMultipleChoice  GameType = "MULTIPLE_CHOICE"
	GameTypeListeningChoice GameType = "LISTENING_CHOICE"
	GameTypeSentenceOrder   GameType = "SENTENCE_ORDER"
)

func (t GameType) Valid() bool {
	switch t {
	case GameTypeMultipleChoice, GameTypeListeningChoice, GameTypeSentenceOrder:
		return true
	}
	return false
}

type LessonLevel string

const (
	LessonLevelBeginner     LessonLevel = "BEGINNER"
	LessonLevelIntermediate LessonLevel = "INTERMEDIATE"
	LessonLevelAdvanced     LessonLevel = "ADVANCED"
)

type User struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Username     string `gorm:"size:255;not null;unique" json:"username"`
	Password     string `gorm:"size:100;not null" json:"-"`
	Name         string `gorm:"size:255" json:"name"`
	Address      string `gorm:"size:255" json:"address"`
	Role         string `gorm:"size:50;not null;default:USER" json:"role"`
	RefreshToken string `gorm:"size:512" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	CreatedBy    string    `gorm:"size:255" json:"created_by"`
	UpdatedBy    string    `gorm:"size:255" json:"updated_by"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Game struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	Name          string   `gorm:"size:255;not null" json:"name"`
	Description   string   `json:"description"`
	Type          GameType `gorm:"size:32;not null" json:"type"`
	TotalQuestion int      `gorm:"not null;default:0" json:"total_question"`
	TimesPlayed   int      `gorm:"not null;default:0" json:"times_played"`
	BestScore     int      `gorm:"not null;default:0" json:"best_score"`
	Questions     []Question `gorm:"constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type Question struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	GameID   uint   `gorm:"index;not null" json:"game_id"`
	Content  string `json:"content"`
	ImageURL string `gorm:"size:512" json:"image_url"`
	AudioURL string `gorm:"size:512" json:"audio_url"`
	Answers  []Answer `gorm:"constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

type Answer struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"index;not null" json:"question_id"`
	Content    string `json:"content"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"is_correct"`
	OrderIndex int    `gorm:"not null;default:0" json:"order_index"`
}

// Point records one play-attempt outcome. User and Game are referenced,
// not owned; a point outlives either side except for the explicit
// reset-by-user and reset-by-game bulk deletes.
type Point struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         string    `gorm:"size:36;index;not null" json:"user_id"`
	GameID         uint      `gorm:"index;not null" json:"game_id"`
	Score          int       `gorm:"not null;default:0" json:"score"`
	Bonus          int       `gorm:"not null;default:0" json:"bonus"`
	CorrectAnswers int       `gorm:"not null;default:0" json:"correct_answers"`
	TotalQuestions int       `gorm:"not null;default:0" json:"total_questions"`
	CreatedAt      time.Time `json:"created_at"`
	User           User      `json:"-"`
	Game           Game      `json:"-"`
}

type Lesson struct {
	ID              string      `gorm:"primaryKey;size:36" json:"id"`
	LessonTitle     string      `gorm:"size:255;not null;unique" json:"lesson_title"`
	VideoURL        string      `gorm:"size:512" json:"video_url"`
	Description     string      `json:"description"`
	Level           LessonLevel `gorm:"size:32" json:"level"`
	DurationSeconds float64     `gorm:"not null;default:0" json:"duration_seconds"`
	Vocabularies    []Vocabulary  `gorm:"constraint:OnDelete:CASCADE" json:"vocabularies,omitempty"`
	LessonDetail    *LessonDetail `gorm:"constraint:OnDelete:CASCADE" json:"lesson_detail,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	CreatedBy       string        `gorm:"size:255" json:"created_by"`
	UpdatedBy       string        `gorm:"size:255" json:"updated_by"`
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

type Vocabulary struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	LessonID        string    `gorm:"size:36;index;not null" json:"lesson_id"`
	Word            string    `gorm:"size:255;not null;unique" json:"word"`
	EnglishMeaning  string    `json:"english_meaning"`
	ExampleSentence string    `json:"example_sentence"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (v *Vocabulary) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

type LessonDetail struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	LessonID  string    `gorm:"size:36;uniqueIndex;not null" json:"lesson_id"`
	Gramma    string    `gorm:"type:text" json:"gramma"`
	Vocab     string    `json:"vocab"`
	Phonetic  string    `json:"phonetic"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *LessonDetail) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// UserLesson holds the last watched position for one (user, lesson)
// pair. The composite unique index keeps the pair single-rowed; the row
// is created lazily on the first progress save.
type UserLesson struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	UserID            string    `gorm:"size:36;not null;uniqueIndex:idx_user_lesson" json:"user_id"`
	LessonID          string    `gorm:"size:36;not null;uniqueIndex:idx_user_lesson" json:"lesson_id"`
	LastWatchedSecond float64   `gorm:"not null;default:0" json:"last_watched_second"`
	Completed         bool      `gorm:"not null;default:false" json:"completed"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (ul *UserLesson) BeforeCreate(tx *gorm.DB) error {
	if ul.ID == "" {
		ul.ID = uuid.NewString()
	}
	return nil
}

// InvalidatedToken blacklists a JWT by its jti until the token would
// have expired anyway. Expired rows are removed by the periodic sweep.
type InvalidatedToken struct {
	ID         string    `gorm:"primaryKey;size:64"`
	ExpiryTime time.Time `gorm:"index;not null"`
}

// PlaySession tracks one in-flight game run: which questions were
// answered and how many were correct so far. The ledger remains the
// source of truth for recorded scores; expired sessions are swept.
type PlaySession struct {
	ID             uint           `gorm:"primaryKey"`
	UserID         string         `gorm:"size:36;index;not null;uniqueIndex:idx_play_session_user_game"`
	GameID         uint           `gorm:"not null;uniqueIndex:idx_play_session_user_game"`
	AnsweredIDs    datatypes.JSON `gorm:"not null"`
	CorrectCount   int            `gorm:"not null;default:0"`
	AttemptCount   int            `gorm:"not null;default:0"`
	LastActivityAt time.Time      `gorm:"not null"`
	ExpiresAt      time.Time      `gorm:"index;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
