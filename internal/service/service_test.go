package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mechsim/internal/config"
	"github.com/san-kum/mechsim/internal/physics"
	"github.com/san-kum/mechsim/internal/scenario"
	"github.com/san-kum/mechsim/internal/service"
	"github.com/san-kum/mechsim/internal/vec"
)

type stubParser struct {
	sc  scenario.Scenario
	err error
}

func (p stubParser) Parse(context.Context, string) (scenario.Scenario, error) {
	return p.sc, p.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(p service.Parser) *service.Service {
	return service.New(config.DefaultConfig().Sim, p, quietLogger())
}

func findBody(snap *physics.WorldSnapshot, id string) *physics.BodySnapshot {
	for i := range snap.Objects {
		if snap.Objects[i].ID == id {
			return &snap.Objects[i]
		}
	}
	return nil
}

var _ = Describe("Service", func() {
	var svc *service.Service

	BeforeEach(func() {
		svc = newService(stubParser{err: errors.New("unused")})
	})

	Context("without a simulation", func() {
		It("rejects state queries", func() {
			_, err := svc.State()
			Expect(err).To(MatchError(service.ErrNoSimulation))
		})

		It("rejects control commands", func() {
			Expect(svc.Start()).To(MatchError(service.ErrNoSimulation))
			_, err := svc.Step(1)
			Expect(err).To(MatchError(service.ErrNoSimulation))
			Expect(svc.Running()).To(BeFalse())
		})
	})

	Describe("CreatePreset", func() {
		It("builds the named preset", func() {
			snap, err := svc.CreatePreset("elastic_collision", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.Objects).To(HaveLen(2))
			Expect(snap.Time).To(BeZero())
		})

		It("fails for an unknown preset", func() {
			_, err := svc.CreatePreset("warp_drive", nil)
			Expect(err).To(MatchError(scenario.ErrUnknownPreset))
		})

		It("records the scenario", func() {
			_, err := svc.CreatePreset("free_fall", map[string]float64{"height": 20})
			Expect(err).NotTo(HaveOccurred())
			sc, err := svc.Scenario()
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.ScenarioType).To(Equal("free_fall"))
		})
	})

	Describe("CreateFromText", func() {
		It("uses the parsed scenario", func() {
			sc, err := scenario.Preset("projectile_motion", nil)
			Expect(err).NotTo(HaveOccurred())
			svc = newService(stubParser{sc: sc})

			snap, err := svc.CreateFromText(context.Background(), "a ball is thrown")
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.Objects).To(HaveLen(1))
		})

		It("passes parser errors through", func() {
			boom := errors.New("boom")
			svc = newService(stubParser{err: boom})
			_, err := svc.CreateFromText(context.Background(), "x")
			Expect(err).To(MatchError(boom))
		})
	})

	Context("with a projectile", func() {
		var id string

		BeforeEach(func() {
			snap, err := svc.CreatePreset("projectile_motion", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.Objects).NotTo(BeEmpty())
			id = snap.Objects[0].ID
		})

		It("does not advance while stopped", func() {
			snap, err := svc.Step(10)
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.Time).To(BeZero())
		})

		It("advances exactly one step with StepOnce", func() {
			snap, err := svc.StepOnce()
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.Time).To(BeNumerically("~", 1.0/60, 1e-9))
			Expect(svc.Running()).To(BeFalse())
		})

		It("advances n steps while running", func() {
			Expect(svc.Start()).To(Succeed())
			snap, err := svc.Step(30)
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.Time).To(BeNumerically("~", 0.5, 1e-9))
			Expect(svc.Running()).To(BeTrue())

			Expect(svc.Stop()).To(Succeed())
			Expect(svc.Running()).To(BeFalse())
		})

		It("rejects a non-positive step count", func() {
			_, err := svc.Step(0)
			Expect(err).To(MatchError(service.ErrInvalidParameter))
		})

		It("resets to the initial state", func() {
			before, err := svc.State()
			Expect(err).NotTo(HaveOccurred())
			Expect(svc.Start()).To(Succeed())
			_, err = svc.Step(20)
			Expect(err).NotTo(HaveOccurred())

			after, err := svc.Reset()
			Expect(err).NotTo(HaveOccurred())
			Expect(after.Time).To(BeZero())
			Expect(findBody(after, id).Position).To(Equal(findBody(before, id).Position))
		})

		It("reports metrics", func() {
			_, err := svc.StepOnce()
			Expect(err).NotTo(HaveOccurred())
			m, err := svc.Metrics()
			Expect(err).NotTo(HaveOccurred())
			Expect(m).To(HaveKey("energy_drift"))
		})

		Describe("AddBody", func() {
			It("adds a body with gravity and a unique id", func() {
				spec := service.BodySpec{Mass: 2, Position: vec.New(10, 10), Label: "Rock"}
				_, err := svc.AddBody(spec)
				Expect(err).NotTo(HaveOccurred())
				snap, err := svc.AddBody(spec)
				Expect(err).NotTo(HaveOccurred())

				Expect(findBody(snap, "Rock")).NotTo(BeNil())
				rock := findBody(snap, "Rock_2")
				Expect(rock).NotTo(BeNil())
				Expect(rock.Mass).To(Equal(2.0))
				Expect(rock.Radius).To(Equal(0.5))
			})

			It("rejects a non-positive mass", func() {
				_, err := svc.AddBody(service.BodySpec{Mass: 0, Label: "x"})
				Expect(err).To(MatchError(service.ErrInvalidParameter))
			})

			It("rejects a state whose energy overflows", func() {
				_, err := svc.AddBody(service.BodySpec{Mass: 1, Label: "fast", Velocity: vec.New(1e200, 0)})
				Expect(err).To(MatchError(service.ErrInvalidParameter))
				snap, err := svc.State()
				Expect(err).NotTo(HaveOccurred())
				Expect(findBody(snap, "fast")).To(BeNil())
			})

			It("rejects an unknown shape", func() {
				_, err := svc.AddBody(service.BodySpec{Mass: 1, Label: "x", Shape: "hexagon"})
				Expect(err).To(MatchError(service.ErrInvalidParameter))
			})
		})

		Describe("RemoveBody", func() {
			It("removes the body", func() {
				snap, err := svc.RemoveBody(id)
				Expect(err).NotTo(HaveOccurred())
				Expect(findBody(snap, id)).To(BeNil())
			})

			It("reports a missing body", func() {
				_, err := svc.RemoveBody("ghost")
				Expect(err).To(MatchError(physics.ErrBodyNotFound))
			})
		})

		Describe("UpdateParameter", func() {
			It("sets the velocity and resets", func() {
				Expect(svc.Start()).To(Succeed())
				_, err := svc.Step(5)
				Expect(err).NotTo(HaveOccurred())

				snap, err := svc.UpdateParameter(id, "velocity", map[string]any{"x": 3.0, "y": 4.0})
				Expect(err).NotTo(HaveOccurred())
				Expect(snap.Time).To(BeZero())
				Expect(findBody(snap, id).Velocity).To(Equal(vec.New(3, 4)))
			})

			It("keeps a new position across reset", func() {
				_, err := svc.UpdateParameter(id, "position", map[string]any{"x": 7.0, "y": 8.0})
				Expect(err).NotTo(HaveOccurred())
				snap, err := svc.Reset()
				Expect(err).NotTo(HaveOccurred())
				Expect(findBody(snap, id).Position).To(Equal(vec.New(7, 8)))
			})

			DescribeTable("rejects bad values",
				func(name string, value any, target error) {
					_, err := svc.UpdateParameter(id, name, value)
					Expect(err).To(MatchError(target))
				},
				Entry("negative mass", "mass", -1.0, service.ErrInvalidParameter),
				Entry("string mass", "mass", "heavy", service.ErrInvalidParameter),
				Entry("bad collision type", "collision_type", "sticky", service.ErrInvalidParameter),
				Entry("bad vector", "velocity", map[string]any{"x": 1.0}, service.ErrInvalidParameter),
				Entry("overflowing velocity", "velocity", map[string]any{"x": 1e200, "y": 0.0}, service.ErrInvalidParameter),
				Entry("overflowing mass", "mass", 1e308, service.ErrInvalidParameter),
				Entry("non-finite text", "restitution", "Inf", service.ErrInvalidParameter),
				Entry("unknown name", "charge", 1.0, service.ErrUnknownParameter),
			)

			It("leaves the body unchanged on error", func() {
				before, _ := svc.State()
				_, err := svc.UpdateParameter(id, "mass", -5.0)
				Expect(err).To(HaveOccurred())
				after, _ := svc.State()
				Expect(findBody(after, id).Mass).To(Equal(findBody(before, id).Mass))
			})

			It("toggles display flags", func() {
				snap, err := svc.UpdateParameter(id, "show_trajectory", false)
				Expect(err).NotTo(HaveOccurred())
				Expect(findBody(snap, id).ShowTrajectory).To(BeFalse())
			})
		})

		Describe("UpdateWorld", func() {
			It("turns gravity off", func() {
				off := false
				snap, err := svc.UpdateWorld(service.WorldUpdate{GravityEnabled: &off})
				Expect(err).NotTo(HaveOccurred())
				Expect(snap.GravityEnabled).To(BeFalse())
			})

			It("changes the gravity strength", func() {
				g := 1.6
				snap, err := svc.UpdateWorld(service.WorldUpdate{GravityStrength: &g})
				Expect(err).NotTo(HaveOccurred())
				Expect(snap.GravityStrength).To(Equal(1.6))
			})

			It("toggles collisions", func() {
				off := false
				snap, err := svc.UpdateWorld(service.WorldUpdate{CollisionEnabled: &off})
				Expect(err).NotTo(HaveOccurred())
				Expect(snap.CollisionEnabled).To(BeFalse())
			})
		})

		Describe("circular motion", func() {
			It("enables and resizes an orbit", func() {
				snap, err := svc.SetCircularMotion(id, service.CircularSettings{
					Center: vec.New(50, 50), Radius: 10, AngularVelocity: 1, Enabled: true,
				})
				Expect(err).NotTo(HaveOccurred())
				b := findBody(snap, id)
				Expect(b.CircularMotion).NotTo(BeNil())
				Expect(b.CircularMotion.Radius).To(Equal(10.0))

				snap, err = svc.SetCircularRadius(id, 20)
				Expect(err).NotTo(HaveOccurred())
				Expect(findBody(snap, id).CircularMotion.Radius).To(Equal(20.0))
			})

			It("refuses a radius change without an orbit", func() {
				_, err := svc.SetCircularRadius(id, 5)
				Expect(err).To(MatchError(physics.ErrNotCircular))
			})

			It("rejects a non-positive radius", func() {
				_, err := svc.SetCircularRadius(id, 0)
				Expect(err).To(MatchError(service.ErrInvalidParameter))
			})

			It("disables the orbit", func() {
				_, err := svc.SetCircularMotion(id, service.CircularSettings{Radius: 5, Enabled: true})
				Expect(err).NotTo(HaveOccurred())
				snap, err := svc.SetCircularMotion(id, service.CircularSettings{})
				Expect(err).NotTo(HaveOccurred())
				Expect(findBody(snap, id).CircularMotion).To(BeNil())
			})
		})

		Describe("SetCollisionSettings", func() {
			It("updates the body", func() {
				snap, err := svc.SetCollisionSettings(id, "inelastic", 0.4)
				Expect(err).NotTo(HaveOccurred())
				b := findBody(snap, id)
				Expect(b.CollisionType).To(Equal(physics.Inelastic))
				Expect(b.Restitution).To(Equal(0.4))
			})

			It("rejects an unknown type", func() {
				_, err := svc.SetCollisionSettings(id, "bouncy", 1)
				Expect(err).To(MatchError(service.ErrInvalidParameter))
			})
		})

		Describe("Stream", func() {
			It("emits snapshots until told to stop", func() {
				var frames int
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()

				err := svc.Stream(ctx, time.Millisecond, func(*physics.WorldSnapshot) bool {
					frames++
					return frames < 3
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(frames).To(Equal(3))
			})

			It("stops on context cancel", func() {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				err := svc.Stream(ctx, time.Millisecond, func(*physics.WorldSnapshot) bool { return true })
				Expect(err).To(MatchError(context.Canceled))
			})
		})
	})
})
