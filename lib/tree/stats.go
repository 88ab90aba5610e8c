package tree

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/benz9527/xtree/lib/infra"
)

const (
	TreeStatsName = "xtree"
)

type treeStats struct {
	kindAttrs          metric.MeasurementOption
	leftRotationAttrs  metric.MeasurementOption
	rightRotationAttrs metric.MeasurementOption
	size               metric.Int64UpDownCounter
	insertCount        metric.Int64Counter
	removeCount        metric.Int64Counter
	rotationCount      metric.Int64Counter
}

func (stats *treeStats) recordInsert() {
	if stats == nil {
		return
	}
	stats.insertCount.Add(context.Background(), 1, stats.kindAttrs)
	stats.size.Add(context.Background(), 1, stats.kindAttrs)
}

func (stats *treeStats) recordRemove() {
	if stats == nil {
		return
	}
	stats.removeCount.Add(context.Background(), 1, stats.kindAttrs)
	stats.size.Add(context.Background(), -1, stats.kindAttrs)
}

func (stats *treeStats) recordRelease(released int64) {
	if stats == nil || released == 0 {
		return
	}
	stats.size.Add(context.Background(), -released, stats.kindAttrs)
}

func (stats *treeStats) recordRotation(dir Direction) {
	if stats == nil {
		return
	}
	switch dir {
	case Left:
		stats.rotationCount.Add(context.Background(), 1, stats.leftRotationAttrs)
	case Right:
		stats.rotationCount.Add(context.Background(), 1, stats.rightRotationAttrs)
	default:
	}
}

func newTreeStats[T infra.OrderedKey](ref *tree[T]) *treeStats {
	meterName := fmt.Sprintf("%s/%s", TreeStatsName, ref.statsName)
	meter := otel.Meter(meterName)
	kind := attribute.String("xtree.kind", ref.kind.String())
	return &treeStats{
		kindAttrs: metric.WithAttributeSet(attribute.NewSet(kind)),
		leftRotationAttrs: metric.WithAttributeSet(attribute.NewSet(
			kind, attribute.String("xtree.rotation.direction", Left.String()),
		)),
		rightRotationAttrs: metric.WithAttributeSet(attribute.NewSet(
			kind, attribute.String("xtree.rotation.direction", Right.String()),
		)),
		size: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			"xtree.size",
			metric.WithDescription("The number of values in the tree."),
		)),
		insertCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xtree.insert.count",
			metric.WithDescription("The number of values inserted into the tree."),
		)),
		removeCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xtree.remove.count",
			metric.WithDescription("The number of values removed from the tree."),
		)),
		rotationCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xtree.rotation.count",
			metric.WithDescription("The number of rotations run by the tree rebalancing."),
		)),
	}
}
