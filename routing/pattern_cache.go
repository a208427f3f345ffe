package routing

import "sync"

// patternCache caches compiled patterns by their specification string.
// The number of unique specifications is bounded by the number of
// registered routes, so the cache grows to a fixed size and stays there.
var patternCache sync.Map
