package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/yohamta/donburi"
)

// Shooter rate-limits projectile spawns.
type Shooter struct {
	Cooldown     float64
	lastShotTime float64
	shotCounter  int
	fired        bool
}

// Projectile is a sphere flying in a straight line.
type Projectile struct {
	Direction rl.Vector3
	Speed     float32
	Radius    float32
	Age       float32
	Lifetime  float32
}

var (
	ShooterComponent    = donburi.NewComponentType[Shooter](NewShooter(0.15))
	ProjectileComponent = donburi.NewComponentType[Projectile]()
)

func NewShooter(cooldown float64) Shooter {
	return Shooter{Cooldown: cooldown}
}

// TryShoot reports whether a shot may be fired at time now and records it.
func (s *Shooter) TryShoot(now float64) bool {
	if s.fired && now-s.lastShotTime < s.Cooldown {
		return false
	}
	s.fired = true
	s.lastShotTime = now
	s.shotCounter++
	return true
}

func (s *Shooter) ShotCount() int {
	return s.shotCounter
}

// Step advances the projectile and reports whether it is still alive.
func (p *Projectile) Step(pos rl.Vector3, dt float32) (rl.Vector3, bool) {
	p.Age += dt
	next := rl.Vector3Add(pos, rl.Vector3Scale(p.Direction, p.Speed*dt))
	if p.Lifetime > 0 && p.Age >= p.Lifetime {
		return next, false
	}
	return next, true
}
