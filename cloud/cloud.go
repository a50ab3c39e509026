// Package cloud loads point clouds for inspection.
package cloud

import (
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
	"github.com/seqsense/pcgol/pc/filter/voxelgrid"
	"github.com/seqsense/pcgol/pc/storage/kdtree"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Options controls the preprocessing applied on load.
type Options struct {
	// VoxelSize downsamples the cloud by a voxel grid filter if positive.
	// Per-point colors are dropped when downsampled.
	VoxelSize float32
	// Center moves the bounding box center to the origin.
	Center bool
	// RotateX rotates the cloud about the X axis, in radians.
	// Applied after centering.
	RotateX float32

	Logger *zap.Logger
}

// Cloud is an immutable point set.
// It implements pc.Vec3RandomAccessor.
type Cloud struct {
	Name string

	points   pc.Vec3Slice
	colors   []mat.Vec3
	min, max mat.Vec3

	nearest func(p mat.Vec3, maxRange float32) int
}

// LoadFile reads a PCD file.
func LoadFile(path string, opts Options) (c *Cloud, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening point cloud")
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	c, err = Load(f, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	c.Name = filepath.Base(path)
	return c, nil
}

// Load decodes a PCD stream.
func Load(r io.Reader, opts Options) (*Cloud, error) {
	pp, err := pc.Unmarshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "decoding pcd")
	}
	return FromPointCloud(pp, opts)
}

// FromPointCloud builds a Cloud from a decoded point cloud.
func FromPointCloud(pp *pc.PointCloud, opts Options) (*Cloud, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.VoxelSize > 0 {
		n := pp.Points
		vg := voxelgrid.New(mat.Vec3{opts.VoxelSize, opts.VoxelSize, opts.VoxelSize})
		filtered, err := vg.Filter(pp)
		if err != nil {
			return nil, errors.Wrap(err, "downsampling")
		}
		pp = filtered
		logger.Debug("downsampled",
			zap.Float32("voxel_size", opts.VoxelSize),
			zap.Int("before", n),
			zap.Int("after", pp.Points),
		)
	}

	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, errors.Wrap(err, "reading positions")
	}
	points := make(pc.Vec3Slice, it.Len())
	for i := range points {
		points[i] = it.Vec3At(i)
	}

	var colors []mat.Vec3
	if opts.VoxelSize <= 0 {
		colors = readColors(pp)
	}

	n := len(points)
	points, colors = dropNonFinite(points, colors)
	if dropped := n - len(points); dropped > 0 {
		logger.Debug("non-finite points dropped", zap.Int("dropped", dropped))
	}

	c := newCloud(points, colors)
	if opts.Center || opts.RotateX != 0 {
		c.transform(opts.Center, opts.RotateX)
	}
	logger.Debug("point cloud prepared",
		zap.Int("points", c.Len()),
		zap.Bool("colors", c.HasColors()),
		zap.Any("min", c.min),
		zap.Any("max", c.max),
	)
	return c, nil
}

// FromSlice builds a Cloud from positions.
func FromSlice(points pc.Vec3Slice) *Cloud {
	cp := make(pc.Vec3Slice, len(points))
	copy(cp, points)
	cp, _ = dropNonFinite(cp, nil)
	return newCloud(cp, nil)
}

// dropNonFinite removes points having NaN or infinite coordinates
// in place, keeping colors aligned.
func dropNonFinite(points pc.Vec3Slice, colors []mat.Vec3) (pc.Vec3Slice, []mat.Vec3) {
	withColors := len(colors) == len(points)
	j := 0
	for i, p := range points {
		if !isFinite(p) {
			continue
		}
		points[j] = p
		if withColors {
			colors[j] = colors[i]
		}
		j++
	}
	if withColors {
		colors = colors[:j]
	}
	return points[:j], colors
}

func isFinite(p mat.Vec3) bool {
	for _, v := range p {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return false
		}
	}
	return true
}

func newCloud(points pc.Vec3Slice, colors []mat.Vec3) *Cloud {
	c := &Cloud{
		points: points,
		colors: colors,
	}
	c.updateBounds()
	return c
}

func (c *Cloud) updateBounds() {
	if len(c.points) == 0 {
		c.min, c.max = mat.Vec3{}, mat.Vec3{}
		return
	}
	min, max, err := pc.MinMaxVec3(c.points)
	if err != nil {
		c.min, c.max = mat.Vec3{}, mat.Vec3{}
		return
	}
	c.min, c.max = min, max
}

func (c *Cloud) transform(center bool, rotateX float32) {
	trans := mat.Rotate(1, 0, 0, rotateX)
	if center {
		m := c.min.Add(c.max).Mul(0.5)
		trans = trans.MulAffine(mat.Translate(-m[0], -m[1], -m[2]))
	}
	for i, p := range c.points {
		c.points[i] = trans.TransformAffine(p)
	}
	c.updateBounds()
}

func (c *Cloud) Len() int {
	return len(c.points)
}

func (c *Cloud) Vec3At(i int) mat.Vec3 {
	return c.points[i]
}

// RawIndexAt returns the index i. Cloud is not a view of another cloud.
func (c *Cloud) RawIndexAt(i int) int {
	return i
}

// Points returns the positions. The slice must not be modified.
func (c *Cloud) Points() pc.Vec3Slice {
	return c.points
}

// Colors returns per-point RGB colors in [0, 1], or nil.
func (c *Cloud) Colors() []mat.Vec3 {
	return c.colors
}

func (c *Cloud) HasColors() bool {
	return len(c.colors) > 0 && len(c.colors) == len(c.points)
}

// Bounds returns the axis aligned bounding box.
func (c *Cloud) Bounds() (mat.Vec3, mat.Vec3) {
	return c.min, c.max
}

// Nearest returns the index of the point nearest to p within maxRange
// and the distance to it.
// The kd-tree is built on the first call.
func (c *Cloud) Nearest(p mat.Vec3, maxRange float32) (int, float32, bool) {
	if len(c.points) == 0 {
		return -1, 0, false
	}
	if c.nearest == nil {
		kdt := kdtree.New(c.points)
		c.nearest = func(p mat.Vec3, maxRange float32) int {
			return kdt.Nearest(p, maxRange).ID
		}
	}
	id := c.nearest(p, maxRange)
	if id < 0 {
		return -1, 0, false
	}
	return id, p.Sub(c.points[id]).Norm(), true
}

// readColors extracts packed rgb colors. Both U and F typed fields
// hold the same 0x00RRGGBB bit pattern.
func readColors(pp *pc.PointCloud) []mat.Vec3 {
	offset := 0
	for i, f := range pp.Fields {
		size := pp.Size[i] * pp.Count[i]
		if (f == "rgb" || f == "rgba") && pp.Size[i] == 4 {
			stride := pp.Stride()
			colors := make([]mat.Vec3, pp.Points)
			for j := range colors {
				v := binary.LittleEndian.Uint32(pp.Data[j*stride+offset:])
				colors[j] = mat.Vec3{
					float32((v>>16)&0xFF) / 255,
					float32((v>>8)&0xFF) / 255,
					float32(v&0xFF) / 255,
				}
			}
			return colors
		}
		offset += size
	}
	return nil
}
