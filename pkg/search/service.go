package search

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Service struct {
	db          *bun.DB
	globalLimit int
	now         func() time.Time
}

// NewService returns a search service. globalLimit caps each resource type
// in GlobalSearch.
func NewService(db *bun.DB, globalLimit int) *Service {
	return &Service{
		db:          db,
		globalLimit: globalLimit,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type nameSearch struct {
	table  string
	alias  string
	fk     string
	term   string
	now    time.Time
	limit  int
	sortBy string
}

// SearchVenues returns every venue whose name contains term, ignoring case,
// with its count of shows strictly after now. A limit of 0 returns all
// matches; Count is always the total number of matches.
func (svc *Service) SearchVenues(ctx context.Context, term string, now time.Time, limit int) (*Results, error) {
	return svc.searchNames(ctx, nameSearch{
		table: "venues", alias: "v", fk: "venue_id",
		term: term, now: now, limit: limit,
	})
}

// SearchArtists is SearchVenues for artists.
func (svc *Service) SearchArtists(ctx context.Context, term string, now time.Time, limit int) (*Results, error) {
	return svc.searchNames(ctx, nameSearch{
		table: "artists", alias: "a", fk: "artist_id",
		term: term, now: now, limit: limit,
	})
}

// GlobalSearch searches venues and artists at once, returning up to the
// configured limit of each.
func (svc *Service) GlobalSearch(ctx context.Context, term string) (*GlobalSearchResponse, error) {
	now := svc.now()

	venues, err := svc.SearchVenues(ctx, term, now, svc.globalLimit)
	if err != nil {
		return nil, err
	}
	artists, err := svc.SearchArtists(ctx, term, now, svc.globalLimit)
	if err != nil {
		return nil, err
	}

	return &GlobalSearchResponse{
		SearchTerm: SanitizeTerm(term),
		Venues:     *venues,
		Artists:    *artists,
	}, nil
}

func (svc *Service) searchNames(ctx context.Context, s nameSearch) (*Results, error) {
	data := []Result{}

	q := svc.db.NewSelect().
		TableExpr("? AS ?", bun.Ident(s.table), bun.Ident(s.alias)).
		ColumnExpr("?.id, ?.name", bun.Ident(s.alias), bun.Ident(s.alias)).
		ColumnExpr(
			"(SELECT COUNT(*) FROM shows AS s WHERE s.? = ?.id AND s.start_time > ?) AS num_upcoming_shows",
			bun.Ident(s.fk), bun.Ident(s.alias), s.now,
		).
		OrderExpr("?.sort_name COLLATE NOCASE ASC, ?.id ASC", bun.Ident(s.alias), bun.Ident(s.alias))
	q = WhereContains(q, s.alias+".search_name", s.term)

	if s.limit > 0 {
		q = q.Limit(s.limit)
	}
	if err := q.Scan(ctx, &data); err != nil {
		return nil, errors.WithStack(err)
	}

	count := len(data)
	if s.limit > 0 && count == s.limit {
		cq := svc.db.NewSelect().TableExpr("? AS ?", bun.Ident(s.table), bun.Ident(s.alias))
		cq = WhereContains(cq, s.alias+".search_name", s.term)
		n, err := cq.Count(ctx)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		count = n
	}

	return &Results{Count: count, Data: data}, nil
}
