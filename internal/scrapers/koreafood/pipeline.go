package koreafood

import (
	"context"
	"fmt"
)

// Pipeline walks the whole listing and fetches the detail of every item,
// it is used like bufio.Scanner:
//
//	p := NewPipeline(client)
//	for p.Next(ctx) {
//		record := p.Record()
//	}
//	if err := p.Err(); err != nil {
//		...
//	}
//
// Records come out in listing order, duplicates are not filtered.
type Pipeline struct {
	client  *Client
	listing *Listing
	pending []ListingItem
	record  FoodRecord
	err     error
}

func NewPipeline(client *Client) *Pipeline {
	return &Pipeline{
		client:  client,
		listing: client.Listing(),
	}
}

// Next advances to the next record, it returns false once the listing is
// exhausted or an error occurred.
func (p *Pipeline) Next(ctx context.Context) bool {
	if p.err != nil {
		return false
	}

	for len(p.pending) == 0 {
		if p.listing.Done() {
			return false
		}
		items, err := p.listing.NextPage(ctx)
		if err != nil {
			p.err = err
			return false
		}
		p.pending = items
	}

	item := p.pending[0]
	p.pending = p.pending[1:]

	ingredients, err := p.client.Detail(ctx, item.Code)
	if err != nil {
		p.err = fmt.Errorf("food '%s': %w", item.Name, err)
		return false
	}

	p.record = FoodRecord{
		Categories: item.Categories,
		Name:       item.Name,
		Code:       item.Code,
		Aliment:    ingredients,
	}
	return true
}

// Record is the record Next advanced to.
func (p *Pipeline) Record() FoodRecord {
	return p.record
}

func (p *Pipeline) Err() error {
	return p.err
}
