// Package builtin links every built-in component into the binary. Blank
// importing it makes the default configuration resolvable; deployments
// with out-of-tree components compile their own variant of this list.
package builtin

import (
	_ "imgd/detectors/centerdetector"
	_ "imgd/engines/gifsicle"
	_ "imgd/engines/raster"
	_ "imgd/filters"
	_ "imgd/handlers/reporting"
	_ "imgd/loaders/fileloader"
	_ "imgd/loaders/httploader"
	_ "imgd/metrics"
	_ "imgd/storages/filestorage"
	_ "imgd/storages/lrustorage"
	_ "imgd/storages/nopstorage"
	_ "imgd/storages/redisstorage"
	_ "imgd/storages/s3storage"
)
