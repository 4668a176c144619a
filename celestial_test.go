package orrery

import (
	"testing"
)

func TestSolarSystem(t *testing.T) {
	bodies := SolarSystem()
	if len(bodies) != 9 {
		t.Fatalf("%d bodies in the catalog", len(bodies))
	}
	prev := 0.0
	for _, b := range bodies {
		if err := b.Validate(); err != nil {
			t.Fatal(err)
		}
		if b.Eccentricity() >= 0.25 {
			t.Fatalf("%s: e=%f", b.Name, b.Eccentricity())
		}
		if b.SemiMajorAxis() <= prev {
			t.Fatalf("%s is not ordered by distance", b.Name)
		}
		prev = b.SemiMajorAxis()
		if b.MeanAnomaly() != 0 {
			t.Fatalf("%s does not start at M=0", b.Name)
		}
	}
	if bodies[2].Name != "Earth" || bodies[2].Period() != 1 {
		t.Fatalf("Earth is not the time reference: %s", bodies[2])
	}
	if Sun.Radius <= 0 {
		t.Fatal("the Sun is invisible")
	}
}

func TestSolarSystemCopies(t *testing.T) {
	bodies := SolarSystem()
	bodies[0].Advance(0.1, DefaultKeplerSolver)
	if SolarSystem()[0].MeanAnomaly() != 0 {
		t.Fatal("the catalog is shared")
	}
}

func TestBodyFromString(t *testing.T) {
	for _, name := range []string{"Mercury", "venus", "EARTH", "mArS", "pluto"} {
		if _, err := BodyFromString(name); err != nil {
			t.Fatalf("%s: %s", name, err)
		}
	}
	if _, err := BodyFromString("Sun"); err == nil {
		t.Fatal("the star is not an orbiting body")
	}
	if _, err := BodyFromString("Vulcan"); err == nil {
		t.Fatal("Vulcan was found")
	}
}
