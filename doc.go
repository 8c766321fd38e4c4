// Package libczi implements the core data model and algorithms for reading
// and writing CZI, a tiled, multi-dimensional microscopy image container.
//
// A CZI file stores a large virtual canvas composed of many small
// rectangular sub-blocks, each tagged with a coordinate in a discrete
// multi-dimensional index space (channel, Z-plane, time, scene, rotation,
// illumination, phase, view, block) plus an optional mosaic index and a
// stored-vs-logical-size relation used to detect pyramid layers. Consumers
// render arbitrary regions at arbitrary zoom factors by composing the
// sub-blocks relevant to that region.
//
// This package covers the sub-block directory and statistics engine, the
// tile accessors/compositors, the bitmap primitives, the compressed
// sub-block codecs (JPEG-XR, zstd0, zstd1), and the sub-block cache. The
// on-disk CZI segment parser, the XML metadata DOM, and concrete I/O stream
// implementations are external collaborators consumed through the
// interfaces in repository.go.
package libczi
