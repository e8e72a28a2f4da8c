// Command example demonstrates the multimap tree as a spatial hash: points
// scattered over a 1024x1024 world are bucketed into 64-unit cells, and
// rectangular selections are answered by querying whole cells and then
// filtering the points inside them.
package main

import (
	"fmt"
	"log"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/DDexxeDD/phtree-go/phtree"
)

const (
	worldSize = 1024
	cellSize  = 64
)

type point struct {
	X, Y int64
}

func (p point) cell() (int64, int64) {
	return p.X / cellSize, p.Y / cellSize
}

type selection struct {
	MinX, MinY, MaxX, MaxY int64
}

func (sel selection) contains(p point) bool {
	return p.X >= sel.MinX && p.X <= sel.MaxX &&
		p.Y >= sel.MinY && p.Y <= sel.MaxY
}

// selectPoints queries every cell the selection touches and filters the
// points bucketed there down to the ones actually inside the rectangle.
func selectPoints(cells *phtree.Map, points []point, sel selection) []int {
	query := phtree.NewWindowQuery(
		cells.PointOf(sel.MinX/cellSize, sel.MinY/cellSize),
		cells.PointOf(sel.MaxX/cellSize, sel.MaxY/cellSize),
	)

	cells.QueryWindow(query)

	var ids []int

	for _, entry := range query.Entries {
		for _, id := range entry.IDs {
			if sel.contains(points[id]) {
				ids = append(ids, id)
			}
		}
	}

	return ids
}

func main() {
	// cell coordinates span 0..15, comfortably inside 8 bits
	cells, err := phtree.NewMap(phtree.Config{Dims: 2, Width: phtree.Width8})
	if err != nil {
		log.Fatal(err)
	}

	var (
		faker  = gofakeit.New(0)
		points = make([]point, 500)
	)

	for id := range points {
		points[id] = point{
			X: int64(faker.Number(0, worldSize-1)),
			Y: int64(faker.Number(0, worldSize-1)),
		}

		cx, cy := points[id].cell()
		cells.Insert(cells.PointOf(cx, cy), id)
	}

	occupied := 0
	cells.ForEach(func(*phtree.Entry) bool {
		occupied++
		return true
	})

	fmt.Printf("%d points bucketed into %d of %d cells\n",
		len(points), occupied, (worldSize/cellSize)*(worldSize/cellSize))

	for _, sel := range []selection{
		{100, 100, 300, 300},
		{0, 0, 63, 63},
		{512, 0, 1023, 1023},
	} {
		ids := selectPoints(cells, points, sel)

		fmt.Printf("selection (%d,%d)-(%d,%d): %d points\n",
			sel.MinX, sel.MinY, sel.MaxX, sel.MaxY, len(ids))
	}
}
