package service

import (
	"chronicrelief/server/internal/domain"
	"chronicrelief/server/internal/slug"
)

// curatedGlossary returns the hand-written rehab set covering the three
// launch pain areas (knee, ankle, low back). IDs and aliases are derived
// from the display name so resolution stays consistent with records
// imported from the vendor catalog.
func curatedGlossary() []*domain.Exercise {
	entries := []domain.Exercise{
		// knee
		{
			Name:        "Quad Set (Isometric)",
			TargetAreas: []string{"Knee", "Quadriceps"},
			Description: "Gently tighten the thigh (quad) with the knee straight, holding an isometric contraction.",
			HelpsWith: []string{
				"Early knee rehab",
				"Knee cap (patellofemoral) pain",
				"Activation after injury or surgery",
			},
			MayAggravate: []string{"Acute knee swelling if held too long"},
			SafetyNotes:  []string{"Use pain-free intensity. Hold 3-5 seconds, relax, and breathe. Stop if pain sharpens."},
		},
		{
			Name:        "Straight Leg Raise",
			TargetAreas: []string{"Knee", "Quadriceps", "Hip flexors"},
			Description: "With one knee bent and the other straight, lift the straight leg 12-18 inches while keeping the quad tight.",
			HelpsWith: []string{
				"Knee stability",
				"Quad strength without knee bending",
				"Early rehab when squatting is painful",
			},
			MayAggravate: []string{"Hip flexor irritation if overdone"},
			SafetyNotes:  []string{"Keep knee locked straight. Lift and lower slowly. If the front of the hip pinches, reduce height."},
		},
		{
			Name:        "Wall Sit (Short Range)",
			TargetAreas: []string{"Knee", "Quadriceps", "Glutes"},
			Description: "Back against the wall, slide down a small amount and hold a partial squat isometrically.",
			HelpsWith: []string{
				"Patellofemoral pain (short pain-free angle)",
				"Quad endurance",
				"Knee confidence",
			},
			MayAggravate: []string{"Knee pain if angle is too deep"},
			SafetyNotes:  []string{"Keep range shallow and pain-free. Start 10-20 seconds. Stop with sharp or increasing pain."},
		},
		{
			Name:        "Step-Ups (Low Step)",
			TargetAreas: []string{"Knee", "Glutes", "Quads"},
			Description: "Step onto a low box/step under control and return down slowly, focusing on knee alignment.",
			HelpsWith: []string{
				"Knee tracking control",
				"Functional strength",
				"Confidence with stairs",
			},
			MayAggravate: []string{"Patellar tendon pain if the step is too high"},
			SafetyNotes:  []string{"Use a low step first. Keep knee tracking over toes. Use a handrail for balance if needed."},
		},
		{
			Name:         "Hamstring Stretch (Gentle)",
			TargetAreas:  []string{"Knee", "Hamstrings"},
			Description:  "Light stretch of the back of the thigh using a strap or doorway position.",
			HelpsWith:    []string{"Posterior chain mobility", "Knee comfort with sitting"},
			MayAggravate: []string{"Sciatic nerve irritation if stretched aggressively"},
			SafetyNotes:  []string{"Mild stretch only; no numbness/tingling. Hold 20-30s. Stop if symptoms run below the knee."},
		},
		{
			Name:        "Clamshell",
			TargetAreas: []string{"Hip", "Glutes", "Knee (indirect)"},
			Description: "Side-lying hip external rotation with knees bent, lifting the top knee while feet stay together.",
			HelpsWith: []string{
				"Knee control via hip strength",
				"Patellofemoral tracking support",
				"Hip stability",
			},
			MayAggravate: []string{"Greater trochanter tenderness if overcompressed"},
			SafetyNotes:  []string{"Keep pelvis still; small motion. If it pinches at the hip, decrease range or add cushion."},
		},

		// ankle
		{
			Name:         "Ankle Alphabet (ROM)",
			TargetAreas:  []string{"Ankle", "Foot"},
			Description:  "Seated or lying, draw the letters of the alphabet in the air with your foot to improve range of motion.",
			HelpsWith:    []string{"Early ankle sprain recovery", "General ankle mobility"},
			MayAggravate: []string{"Acute swelling if performed too vigorously"},
			SafetyNotes:  []string{"Move gently and within comfort. Stop if pain increases. Elevate after if swelling is present."},
		},
		{
			Name:         "Calf Raise (Bilateral)",
			TargetAreas:  []string{"Ankle", "Calves"},
			Description:  "Standing with support, rise onto both toes and lower under control to strengthen the calf and ankle.",
			HelpsWith:    []string{"Ankle stability", "Calf strength", "Return to walking endurance"},
			MayAggravate: []string{"Achilles tendon pain if volume is too high early on"},
			SafetyNotes:  []string{"Use both legs first. Rise smoothly; slow controlled lowering. Stop with sharp Achilles pain."},
		},
		{
			Name:         "Ankle Dorsiflexion with Band",
			TargetAreas:  []string{"Ankle", "Tibialis anterior"},
			Description:  "Use a light resistance band to pull the foot upward (toes toward shin) against resistance.",
			HelpsWith:    []string{"Shin/ankle control", "Foot clearance during walking"},
			MayAggravate: []string{"Anterior ankle pinching if range is forced"},
			SafetyNotes:  []string{"Stay in pain-free range. Keep band light/steady. Aim for smooth reps."},
		},
		{
			Name:         "Ankle Eversion/Inversion with Band",
			TargetAreas:  []string{"Ankle", "Peroneals", "Tibialis posterior"},
			Description:  "Rotate the foot outward (eversion) and inward (inversion) against a band to strengthen stabilizers.",
			HelpsWith:    []string{"Ankle sprain prevention", "Lateral ankle stability"},
			MayAggravate: []string{"Fresh lateral sprain if loaded too early"},
			SafetyNotes:  []string{"Begin with low resistance. Avoid end-range pain. Keep the knee still; move at the ankle."},
		},
		{
			Name:         "Single-Leg Balance (Supported)",
			TargetAreas:  []string{"Ankle", "Foot", "Balance"},
			Description:  "Stand on one leg with light fingertip support, holding steady and building time gradually.",
			HelpsWith:    []string{"Proprioception after sprain", "Functional stability"},
			MayAggravate: []string{"Ankle fatigue if held too long early on"},
			SafetyNotes:  []string{"Use a counter/chair for light support. Keep the arch active. Stop if ankle wobbles into pain."},
		},
		{
			Name:         "Calf Stretch (Wall/Step)",
			TargetAreas:  []string{"Ankle", "Calves"},
			Description:  "Stretch the calf with knee straight (gastrocnemius) and slightly bent (soleus).",
			HelpsWith:    []string{"Ankle mobility", "Walking comfort", "Reducing calf tightness"},
			MayAggravate: []string{"Achilles irritation if overstretched"},
			SafetyNotes:  []string{"Gentle stretch only; no bouncing. Hold 20-30s. Back off if Achilles feels sharp."},
		},

		// low back
		{
			Name:         "Cat-Camel (Spinal Mobility)",
			TargetAreas:  []string{"Low back", "Spine"},
			Description:  "On hands and knees, alternate rounding and gently arching the back to mobilize the spine.",
			HelpsWith:    []string{"Morning stiffness", "Gentle motion without loading"},
			MayAggravate: []string{"Extension-sensitive low back pain if arched too far"},
			SafetyNotes:  []string{"Slow, small ranges. Aim for comfort. If any motion hurts, keep it smaller or skip that part."},
		},
		{
			Name:         "Child's Pose (Comfort Stretch)",
			TargetAreas:  []string{"Low back", "Hips"},
			Description:  "From kneeling, sit back toward heels with arms forward to lightly stretch the back and hips.",
			HelpsWith:    []string{"General low back tightness", "Relaxation"},
			MayAggravate: []string{"Knee discomfort in deep flexion"},
			SafetyNotes:  []string{"Use pillows under hips or chest. Stop with sharp pain or tingling."},
		},
		{
			Name:         "Bird-Dog",
			TargetAreas:  []string{"Low back", "Core", "Glutes"},
			Description:  "From hands and knees, extend opposite arm and leg while keeping the trunk steady.",
			HelpsWith:    []string{"Spinal stability", "Core endurance", "Back pain prevention"},
			MayAggravate: []string{"Low back discomfort if trunk drops or hyperextends"},
			SafetyNotes:  []string{"Keep ribs down and hips level. Move slowly. If balance is hard, start with just legs or arms."},
		},
		{
			Name:         "Dead Bug",
			TargetAreas:  []string{"Core", "Low back (support)"},
			Description:  "On your back with hips/knees at 90 degrees, alternate lowering one heel and opposite arm while bracing the core.",
			HelpsWith:    []string{"Core control", "Support for the lumbar spine"},
			MayAggravate: []string{"Hip flexor irritation if form is lost"},
			SafetyNotes:  []string{"Keep low back gently pressed toward the floor. Move small and slow at first."},
		},
		{
			Name:         "Glute Bridge",
			TargetAreas:  []string{"Glutes", "Hamstrings", "Low back (support)"},
			Description:  "On your back, press through the feet to lift hips, squeezing glutes at the top.",
			HelpsWith:    []string{"Hip extension strength", "Reducing anterior pelvic tilt strain"},
			MayAggravate: []string{"Low back arching if glutes aren't engaged"},
			SafetyNotes:  []string{"Drive through heels, ribs down. Stop if pain occurs in the low back; reduce height or add a cushion."},
		},
		{
			Name:         "Hip Hinge Drill (Dowel/PVC)",
			TargetAreas:  []string{"Hips", "Hamstrings", "Low back (technique)"},
			Description:  "Practice bending at the hips while keeping a neutral spine, guided by a stick along head-back-hips.",
			HelpsWith:    []string{"Safe lifting mechanics", "Reducing lumbar strain"},
			MayAggravate: []string{"Acute flare if depth is forced"},
			SafetyNotes:  []string{"Keep three points of contact with the stick. Move within a comfortable range; no forced depth."},
		},
		{
			Name:         "Piriformis Stretch (Figure-4)",
			TargetAreas:  []string{"Hips", "Glutes", "Low back (indirect)"},
			Description:  "Lying or seated, cross one ankle over the opposite knee and pull the thigh toward you to stretch the glutes.",
			HelpsWith:    []string{"Posterior hip tightness", "Some sciatic-like buttock tension"},
			MayAggravate: []string{"True nerve root irritation if over-stretched"},
			SafetyNotes:  []string{"Gentle stretch only. Numbness/tingling = back off. Hold 20-30s, easy breathing."},
		},
	}

	out := make([]*domain.Exercise, 0, len(entries))
	for i := range entries {
		ex := entries[i]
		ex.ID = slug.Slugify(ex.Name)
		ex.Aliases = slug.AliasVariants(ex.Name)
		out = append(out, &ex)
	}
	return out
}
