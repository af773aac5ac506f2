package spawn

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/gatherd/internal/model"
	"github.com/udisondev/gatherd/internal/zone"
)

// TemplateSource resolves a zone's configured object-template name to a
// cloneable object definition.
type TemplateSource interface {
	Template(name string) (*model.ObjectTemplate, bool)
}

// Placer computes a valid spawn pose inside a zone, or reports that no
// placement was found this tick.
type Placer interface {
	PlacePose(cfg *model.ZoneConfig, tmpl *model.ObjectTemplate) (model.Pose, error)
}

// World is the slice of world state the scheduler needs: node liveness and
// the add/remove pair for world representations.
type World interface {
	AddNode(node *model.GatherNode)
	RemoveNode(nodeID string)
	Contains(nodeID string) bool
}

// Interactions arms a freshly spawned node's hold-to-interact trigger and
// drops the trigger of a node removed outside the collection path.
type Interactions interface {
	Arm(node *model.GatherNode, hold time.Duration)
	Disarm(node *model.GatherNode)
}

// Scheduler runs one spawn control loop per configured zone. Each loop ticks
// at its zone's spawn interval and keeps the live population at or under the
// zone's cap, spawning at most one object per tick.
type Scheduler struct {
	registry     *zone.Registry
	placer       Placer
	templates    TemplateSource
	world        World
	interactions Interactions
}

// NewScheduler creates a scheduler over all zones in the registry.
func NewScheduler(
	registry *zone.Registry,
	placer Placer,
	templates TemplateSource,
	world World,
	interactions Interactions,
) *Scheduler {
	return &Scheduler{
		registry:     registry,
		placer:       placer,
		templates:    templates,
		world:        world,
		interactions: interactions,
	}
}

// Run starts one loop goroutine per zone and blocks until the context is
// canceled. Zone loops have no terminal state under normal operation; a zone
// whose template is missing logs an error and produces no objects, without
// affecting the other zones or the process.
func (s *Scheduler) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, cfg := range s.registry.Zones() {
		g.Go(func() error {
			return s.runZone(gctx, cfg)
		})
	}

	return g.Wait()
}

// runZone is the per-zone control loop (blocks until context is canceled).
func (s *Scheduler) runZone(ctx context.Context, cfg *model.ZoneConfig) error {
	tmpl, ok := s.templates.Template(cfg.Template())
	if !ok {
		// Fatal for this zone only: the zone produces no objects.
		slog.Error("zone spawn loop aborted: object template not found",
			"zone", cfg.ID(),
			"template", cfg.Template())
		return nil
	}

	ticker := time.NewTicker(cfg.SpawnInterval())
	defer ticker.Stop()

	slog.Info("zone spawn loop started",
		"zone", cfg.ID(),
		"template", tmpl.Name(),
		"interval", cfg.SpawnInterval(),
		"cap", cfg.PopulationCap())

	for {
		select {
		case <-ctx.Done():
			slog.Info("zone spawn loop stopping", "zone", cfg.ID())
			return ctx.Err()

		case <-ticker.C:
			s.tick(cfg, tmpl)
		}
	}
}

// tick runs one spawn attempt: prune dead registry entries, recount, and
// spawn a single object if the zone is under its population cap.
func (s *Scheduler) tick(cfg *model.ZoneConfig, tmpl *model.ObjectTemplate) {
	alive := func(n *model.GatherNode) bool { return s.world.Contains(n.ID()) }

	if removed := s.registry.Prune(cfg.ID(), alive); len(removed) > 0 {
		for _, node := range removed {
			s.interactions.Disarm(node)
		}
		slog.Debug("pruned externally removed nodes",
			"zone", cfg.ID(),
			"count", len(removed))
	}

	live := s.registry.LiveCount(cfg.ID(), alive)
	if live >= cfg.PopulationCap() {
		return
	}

	pose, err := s.placer.PlacePose(cfg, tmpl)
	if err != nil {
		slog.Warn("placement failed this tick",
			"zone", cfg.ID(),
			"live", live,
			"error", err)
		return
	}

	id, err := s.registry.NextID(cfg.ID())
	if err != nil {
		slog.Error("allocating node identifier", "zone", cfg.ID(), "error", err)
		return
	}

	node := model.NewGatherNode(id, cfg.ID(), tmpl, pose)
	s.world.AddNode(node)
	if err := s.registry.Register(cfg.ID(), node); err != nil {
		// Rollback the world representation.
		s.world.RemoveNode(id)
		slog.Error("registering spawned node", "zone", cfg.ID(), "node", id, "error", err)
		return
	}

	s.interactions.Arm(node, cfg.HoldDuration())

	slog.Info("gatherable spawned",
		"node", id,
		"zone", cfg.ID(),
		"template", tmpl.Name(),
		"x", pose.Position.X,
		"y", pose.Position.Y,
		"z", pose.Position.Z)
}
