package chrono

import (
	"time"
	_ "time/tzdata"
)

var seoul *time.Location

func init() {
	var err error
	seoul, err = time.LoadLocation("Asia/Seoul")
	if err != nil {
		panic(err)
	}
}

// Seoul returns a [*time.Location] for Asia/Seoul, the timezone the source
// site is updated in.
func Seoul() *time.Location {
	return seoul
}
