package deps

import (
	"time"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/bookmarks"
	"github.com/Nitesh-orv-5149/PopCornPics/internal/users"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/cache"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/signer"
	"github.com/Nitesh-orv-5149/PopCornPics/pkg/tmdb"
)

// ServerDeps holds the dependencies required by handlers and server.
// Session identity travels through here explicitly rather than via ambient
// globals.
type ServerDeps struct {
	Catalog   *tmdb.Client
	Users     *users.Service
	Bookmarks *bookmarks.Reconciler
	Cache     cache.Cache
	Sessions  signer.Codec

	SearchTTL time.Duration
	Name      string
	StartedAt time.Time
}
