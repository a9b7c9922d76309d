package esd

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/data-power-io/esd-documents/cursor"
)

var pagingKeys = []string{ConfigPage, ConfigPageSize, ConfigCursor, ConfigNextCursor}

// Paginate splits d into pages of at most pageSize records, preserving order. Each page
// carries d's status, message and configs plus page, pageSize, cursor and, except on
// the last page, nextCursor. An empty document yields a single empty page.
func Paginate[T any](d Document[T], pageSize int, m *cursor.Manager) ([]Document[T], error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	total := len(d.DataRecords)
	pageCount := (total + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}

	pages := make([]Document[T], 0, pageCount)
	for page := 0; page < pageCount; page++ {
		start := page * pageSize
		end := min(start+pageSize, total)

		configs := make(map[string]string, len(d.Configs)+len(pagingKeys))
		for k, v := range d.Configs {
			configs[k] = v
		}
		configs[ConfigPage] = strconv.Itoa(page + 1)
		configs[ConfigPageSize] = strconv.Itoa(pageSize)

		token, err := m.CreateOffsetCursor(int64(start), int64(pageSize))
		if err != nil {
			return nil, err
		}
		configs[ConfigCursor] = token

		if end < total {
			next, err := m.CreateOffsetCursor(int64(end), int64(pageSize))
			if err != nil {
				return nil, err
			}
			configs[ConfigNextCursor] = next
		}

		var records []T
		if end > start {
			records = make([]T, end-start)
			copy(records, d.DataRecords[start:end])
		}
		pages = append(pages, NewDocument(d.ResultStatus, d.Message, records, configs))
	}
	return pages, nil
}

// MergePages reassembles pages produced by Paginate. Pages are ordered by their cursor
// offsets, and the paging keys are stripped from the merged configs.
func MergePages[T any](pages []Document[T], m *cursor.Manager) (Document[T], error) {
	if len(pages) == 0 {
		return Document[T]{}, nil
	}

	byOffset := make(map[int64]Document[T], len(pages))
	offsets := make([]int64, 0, len(pages))
	for i, p := range pages {
		oc, err := m.ParseOffsetCursor(p.Configs[ConfigCursor])
		if err != nil {
			return Document[T]{}, fmt.Errorf("page %d: %w", i, err)
		}
		if _, dup := byOffset[oc.Offset]; dup {
			return Document[T]{}, fmt.Errorf("page %d: duplicate offset %d", i, oc.Offset)
		}
		byOffset[oc.Offset] = p
		offsets = append(offsets, oc.Offset)
	}
	slices.Sort(offsets)

	first := byOffset[offsets[0]]
	var configs map[string]string
	for k, v := range first.Configs {
		if slices.Contains(pagingKeys, k) {
			continue
		}
		if configs == nil {
			configs = make(map[string]string)
		}
		configs[k] = v
	}

	var records []T
	for _, off := range offsets {
		p := byOffset[off]
		if int64(len(records)) != off {
			return Document[T]{}, fmt.Errorf("gap before offset %d: have %d records", off, len(records))
		}
		records = append(records, p.DataRecords...)
	}
	return NewDocument(first.ResultStatus, first.Message, records, configs), nil
}

// PaginateEnvelope is Paginate for callers holding a type-erased document
func PaginateEnvelope(t DocumentType, env Envelope, pageSize int, m *cursor.Manager) ([]Envelope, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	records := env.Records()
	total := len(records)
	pageCount := max((total+pageSize-1)/pageSize, 1)

	pages := make([]Envelope, 0, pageCount)
	for page := 0; page < pageCount; page++ {
		start := page * pageSize
		end := min(start+pageSize, total)

		p, err := NewEnvelope(t)
		if err != nil {
			return nil, err
		}
		for _, rec := range records[start:end] {
			if err := p.Append(rec); err != nil {
				return nil, err
			}
		}

		configs := make(map[string]string, len(env.Metadata())+len(pagingKeys))
		for k, v := range env.Metadata() {
			configs[k] = v
		}
		configs[ConfigPage] = strconv.Itoa(page + 1)
		configs[ConfigPageSize] = strconv.Itoa(pageSize)
		if configs[ConfigCursor], err = m.CreateOffsetCursor(int64(start), int64(pageSize)); err != nil {
			return nil, err
		}
		if end < total {
			if configs[ConfigNextCursor], err = m.CreateOffsetCursor(int64(end), int64(pageSize)); err != nil {
				return nil, err
			}
		}

		p.SetMeta(env.Status(), env.Text(), configs)
		pages = append(pages, p)
	}
	return pages, nil
}
