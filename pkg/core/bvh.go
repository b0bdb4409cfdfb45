package core

import (
	"sort"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Shape // Multiple shapes for leaf nodes (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH from a slice of shapes
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{Root: nil}
	}

	// Sorting during the build must not reorder the caller's slice
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return &BVH{
		Root: buildBVH(shapesCopy, 0),
	}
}

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 8

// buildBVH recursively builds the BVH using a simple but fast method with leaf thresholding
func buildBVH(shapes []Shape, depth int) *BVHNode {
	// Calculate bounding box for all shapes
	var boundingBox AABB
	if len(shapes) > 0 {
		boundingBox = shapes[0].BoundingBox()
		for i := 1; i < len(shapes); i++ {
			boundingBox = boundingBox.Union(shapes[i].BoundingBox())
		}
	}

	// Base case: few shapes - create leaf node with all shapes
	// This uses efficient linear search for small groups
	if len(shapes) <= leafThreshold {
		return &BVHNode{
			BoundingBox: boundingBox,
			Shapes:      shapes, // Store all shapes in leaf for linear search
		}
	}

	// For larger groups, use simple median split along longest axis
	// This is much faster than SAH and still gives good results for regular grids
	axis := boundingBox.LongestAxis()
	sortShapesByAxis(shapes, axis)

	// Split in the middle
	mid := len(shapes) / 2
	leftShapes := shapes[:mid]
	rightShapes := shapes[mid:]

	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(leftShapes, depth+1),
		Right:       buildBVH(rightShapes, depth+1),
	}
}

// sortShapesByAxis sorts shapes by their bounding box center along the specified axis
func sortShapesByAxis(shapes []Shape, axis int) {
	sort.Slice(shapes, func(i, j int) bool {
		centerI := shapes[i].BoundingBox().Center()
		centerJ := shapes[j].BoundingBox().Center()

		switch axis {
		case 0:
			return centerI.X < centerJ.X
		case 1:
			return centerI.Y < centerJ.Y
		case 2:
			return centerI.Z < centerJ.Z
		default:
			return false
		}
	})
}

// Hit finds the nearest intersection along the ray's interval
func (bvh *BVH) Hit(ray Ray) (Intersection, bool) {
	if bvh.Root == nil {
		return Intersection{}, false
	}
	return bvh.hitNode(bvh.Root, ray)
}

// hitNode recursively tests ray intersection with BVH nodes,
// shrinking the ray's MaxT as nearer hits are found
func (bvh *BVH) hitNode(node *BVHNode, ray Ray) (Intersection, bool) {
	if !node.BoundingBox.Hit(ray, ray.MinT, ray.MaxT) {
		return Intersection{}, false
	}

	var closest Intersection
	hitAnything := false

	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if its, isHit := shape.Hit(ray); isHit {
				hitAnything = true
				ray.MaxT = its.T
				closest = its
			}
		}
		return closest, hitAnything
	}

	for _, child := range [2]*BVHNode{node.Left, node.Right} {
		if child == nil {
			continue
		}
		if its, isHit := bvh.hitNode(child, ray); isHit {
			hitAnything = true
			ray.MaxT = its.T
			closest = its
		}
	}

	return closest, hitAnything
}

// Occluded reports whether any shape intersects the ray's interval
func (bvh *BVH) Occluded(ray Ray) bool {
	if bvh.Root == nil {
		return false
	}
	return bvh.anyHit(bvh.Root, ray)
}

func (bvh *BVH) anyHit(node *BVHNode, ray Ray) bool {
	if !node.BoundingBox.Hit(ray, ray.MinT, ray.MaxT) {
		return false
	}
	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if _, isHit := shape.Hit(ray); isHit {
				return true
			}
		}
		return false
	}
	return (node.Left != nil && bvh.anyHit(node.Left, ray)) ||
		(node.Right != nil && bvh.anyHit(node.Right, ray))
}

// BoundingBox returns the bounds of every shape in the hierarchy
func (bvh *BVH) BoundingBox() AABB {
	if bvh.Root == nil {
		return AABB{}
	}
	return bvh.Root.BoundingBox
}

// getStats returns statistics about the BVH structure
func (bvh *BVH) getStats() bvhStats {
	if bvh.Root == nil {
		return bvhStats{}
	}

	stats := bvhStats{}
	bvh.collectStats(bvh.Root, 0, &stats)

	// Calculate average depth after collecting all data
	if stats.leafNodes > 0 {
		stats.avgDepth = stats.avgDepth / float64(stats.leafNodes)
	}

	return stats
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes  int
	leafNodes   int
	maxDepth    int
	avgDepth    float64
	totalShapes int
}

// collectStats recursively collects statistics about the BVH
func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *bvhStats) {
	stats.totalNodes++

	if depth > stats.maxDepth {
		stats.maxDepth = depth
	}

	if node.Shapes != nil {
		// Leaf node
		stats.leafNodes++
		stats.totalShapes += len(node.Shapes)
		stats.avgDepth += float64(depth) // Accumulate depth for average calculation
	} else {
		// Internal node
		if node.Left != nil {
			bvh.collectStats(node.Left, depth+1, stats)
		}
		if node.Right != nil {
			bvh.collectStats(node.Right, depth+1, stats)
		}
	}
}
