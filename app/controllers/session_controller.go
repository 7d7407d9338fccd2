package controllers

import (
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/moodvault/moodvault/app/repository"
	"github.com/moodvault/moodvault/internal/pkg/cache"
	"github.com/moodvault/moodvault/internal/pkg/entitlement"
	"github.com/moodvault/moodvault/internal/pkg/guidance"
	"github.com/moodvault/moodvault/internal/pkg/lifecycle"
	"github.com/moodvault/moodvault/internal/pkg/storebilling"
	"github.com/moodvault/moodvault/internal/pkg/usercontext"
)

// subscriptionScreen is the screen whose foreground return triggers a
// subscription refresh.
const subscriptionScreen = "subscription"

// sessionLifecycle bundles the per-user lifecycle pieces.
type sessionLifecycle struct {
	hub        *lifecycle.Hub
	controller *lifecycle.Controller
}

var (
	coordinators *entitlement.Registry

	lifecycleMu sync.Mutex
	lifecycles  map[uint]*sessionLifecycle

	guidanceService *guidance.Service
)

// InitializeSessionController wires the production collaborators for all
// session-scoped state. Must run after database and cache setup.
func InitializeSessionController() {
	api := entitlement.NewClientFromEnv()
	store := repository.NewGlobalEntitlementStore()
	coordinators = entitlement.NewRegistry(func(userID uint, subscriberRef string) *entitlement.Coordinator {
		return entitlement.NewCoordinator(userID, subscriberRef, api, storebilling.CatalogFor, store)
	})
	lifecycles = make(map[uint]*sessionLifecycle)
	guidanceService = guidance.NewService(guidance.NewGeneratorFromEnv(), cache.DefaultStore())
}

// coordinatorFor returns the user's coordinator, creating it on first use.
func coordinatorFor(userCtx usercontext.UserContext) *entitlement.Coordinator {
	return coordinators.Get(userCtx.UserID, userCtx.SubscriberRef)
}

// lifecycleFor returns the user's lifecycle hub and refresh controller,
// creating and starting them on first use.
func lifecycleFor(userCtx usercontext.UserContext) *sessionLifecycle {
	lifecycleMu.Lock()
	defer lifecycleMu.Unlock()

	if lc, ok := lifecycles[userCtx.UserID]; ok {
		return lc
	}
	hub := lifecycle.NewHub()
	ctrl := lifecycle.NewController(hub, coordinatorFor(userCtx), subscriptionScreen)
	ctrl.Start()
	lc := &sessionLifecycle{hub: hub, controller: ctrl}
	lifecycles[userCtx.UserID] = lc
	return lc
}

// HandleDeleteSession discards the user's session-scoped state: the
// subscription coordinator and the lifecycle refresh controller.
func HandleDeleteSession(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return nil
	}

	lifecycleMu.Lock()
	if lc, exists := lifecycles[userCtx.UserID]; exists {
		lc.controller.Stop()
		delete(lifecycles, userCtx.UserID)
	}
	lifecycleMu.Unlock()

	coordinators.Discard(userCtx.UserID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "session discarded"})
}
