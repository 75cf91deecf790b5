package layout

import "github.com/matzehuels/structviz/pkg/snapshot"

// Hash layout constants.
const (
	HashOriginX     = 100.0
	HashOriginY     = 120.0
	BucketWidth     = 120.0
	BucketHeight    = 40.0
	BucketSpacingX  = 20.0
	BucketSpacingY  = 60.0
	BucketsPerRow   = 5
	BucketTitleLift = 10.0
)

// BucketItem is one entry drawn inside a bucket.
type BucketItem struct {
	Text string
	Point
}

// BucketBox is one positioned bucket.
type BucketBox struct {
	Index int
	X, Y  float64 // top left corner
	W, H  float64
	Title Point
	// Items is empty for an empty bucket; Center is where its placeholder goes.
	Items  []BucketItem
	Center Point
}

// HashLayout positions the buckets of a hash table.
type HashLayout struct {
	Buckets []BucketBox
}

// Hash lays out buckets row-major, five per row. A bucket holding several
// entries divides its height evenly between them.
func Hash(buckets snapshot.Buckets) HashLayout {
	var out HashLayout
	for i, bucket := range buckets {
		row, col := i/BucketsPerRow, i%BucketsPerRow
		x := HashOriginX + float64(col)*(BucketWidth+BucketSpacingX)
		y := HashOriginY + float64(row)*(BucketHeight+BucketSpacingY)
		box := BucketBox{
			Index:  i,
			X:      x,
			Y:      y,
			W:      BucketWidth,
			H:      BucketHeight,
			Title:  Point{x + BucketWidth/2, y - BucketTitleLift},
			Center: Point{x + BucketWidth/2, y + BucketHeight/2},
		}
		if len(bucket) > 0 {
			item := BucketHeight / float64(len(bucket))
			for k, text := range bucket {
				box.Items = append(box.Items, BucketItem{
					Text:  text,
					Point: Point{box.Center.X, y + float64(k)*item + item/2},
				})
			}
		}
		out.Buckets = append(out.Buckets, box)
	}
	return out
}
