package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/coursehub/backend/internal/models"
	"github.com/elastic/go-elasticsearch/v9"
)

// CourseIndex maintains and queries the course search index. A nil *CourseIndex
// skips all index maintenance and reports search as unavailable.
type CourseIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewCourseIndex(es *elasticsearch.Client, index string) *CourseIndex {
	if es == nil {
		return nil
	}
	return &CourseIndex{ES: es, Index: index}
}

func (ci *CourseIndex) IndexCourse(ctx context.Context, c *models.Course) error {
	if ci == nil {
		return nil
	}

	body, err := json.Marshal(map[string]any{
		"id":          c.ID,
		"title":       c.Title,
		"description": c.Description,
		"price":       c.Price,
	})
	if err != nil {
		return err
	}

	res, err := ci.ES.Index(
		ci.Index,
		bytes.NewReader(body),
		ci.ES.Index.WithDocumentID(strconv.FormatUint(uint64(c.ID), 10)),
		ci.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("search: index course %d: %w", c.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("search: index course %d: %s", c.ID, res.Status())
	}
	return nil
}

func (ci *CourseIndex) DeleteCourse(ctx context.Context, id uint) error {
	if ci == nil {
		return nil
	}

	res, err := ci.ES.Delete(
		ci.Index,
		strconv.FormatUint(uint64(id), 10),
		ci.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("search: delete course %d: %w", id, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("search: delete course %d: %s", id, res.Status())
	}
	return nil
}

type CourseHit struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func (ci *CourseIndex) Search(ctx context.Context, query string, from, size int) (int64, []CourseHit, error) {
	if ci == nil {
		return 0, nil, fmt.Errorf("search: not configured")
	}

	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := ci.ES.Search(
		ci.ES.Search.WithContext(ctx),
		ci.ES.Search.WithIndex(ci.Index),
		ci.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: query: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: query: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source CourseHit `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	hits := make([]CourseHit, len(r.Hits.Hits))
	for i, h := range r.Hits.Hits {
		hits[i] = h.Source
	}
	return r.Hits.Total.Value, hits, nil
}
