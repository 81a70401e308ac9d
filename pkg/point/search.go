package point

import (
	"strings"
	"time"

	"github.com/doduclong204/vietvibe/pkg/db"
	"github.com/doduclong204/vietvibe/pkg/pagination"
	"gorm.io/gorm"
)

// Filter narrows a ledger search. All fields are optional and combined
// with AND; Keyword alone matches username OR game name.
type Filter struct {
	Keyword  string     `json:"keyword,omitempty"`
	Username string     `json:"username,omitempty"`
	GameName string     `json:"game_name,omitempty"`
	MinScore *int       `json:"min_score,omitempty"`
	MaxScore *int       `json:"max_score,omitempty"`
	From     *time.Time `json:"from,omitempty"`
	To       *time.Time `json:"to,omitempty"`
}

type PageResult struct {
	Meta   pagination.Meta `json:"meta"`
	Result []Record        `json:"result"`
}

// Search filters ledger rows by keyword, username, game name, total
// score range (score+bonus, inclusive) and creation time range
// (inclusive both ends). Default order: newest first, ties broken by
// descending ID.
func Search(filter Filter, page pagination.Request) (*PageResult, error) {
	page = page.Normalized()

	// Chained gorm queries are not reusable after a finisher, so the
	// filtered query is built once for the count and once for the page.
	base := func() *gorm.DB {
		return applyFilter(db.DB.Model(&db.Point{}).
			Joins("JOIN users ON users.id = points.user_id").
			Joins("JOIN games ON games.id = points.game_id"), filter)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, err
	}

	var points []db.Point
	if err := base().
		Preload("User").Preload("Game").
		Order("points.created_at DESC, points.id DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&points).Error; err != nil {
		return nil, err
	}

	records := make([]Record, len(points))
	for i := range points {
		records[i] = *toRecord(&points[i])
	}

	return &PageResult{
		Meta:   pagination.MetaFor(page, total),
		Result: records,
	}, nil
}

// GetAllPoints pages through the whole ledger without filters.
func GetAllPoints(page pagination.Request) (*PageResult, error) {
	return Search(Filter{}, page)
}

// GetPointsByScoreRange lists points whose score+bonus falls inside the
// inclusive range.
func GetPointsByScoreRange(min, max int) ([]Record, error) {
	return listRecords(db.DB.
		Where("score + bonus >= ? AND score + bonus <= ?", min, max))
}

func applyFilter(query *gorm.DB, filter Filter) *gorm.DB {
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("LOWER(users.username) LIKE ? OR LOWER(games.name) LIKE ?", like, like)
	}
	if username := strings.TrimSpace(filter.Username); username != "" {
		query = query.Where("LOWER(users.username) LIKE ?", "%"+strings.ToLower(username)+"%")
	}
	if gameName := strings.TrimSpace(filter.GameName); gameName != "" {
		query = query.Where("LOWER(games.name) LIKE ?", "%"+strings.ToLower(gameName)+"%")
	}
	if filter.MinScore != nil {
		query = query.Where("points.score + points.bonus >= ?", *filter.MinScore)
	}
	if filter.MaxScore != nil {
		query = query.Where("points.score + points.bonus <= ?", *filter.MaxScore)
	}
	if filter.From != nil {
		query = query.Where("points.created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("points.created_at <= ?", *filter.To)
	}
	return query
}
