package domain

import "time"

// EffectiveStatus derives the status a donation should display at a given
// instant. An active donation past its availability window reads as expired;
// the stored status is never mutated here, callers decide when to persist a
// transition.
func EffectiveStatus(d Donation, now time.Time) string {
	if d.Status != StatusActive {
		return d.Status
	}
	to, err := time.Parse(time.RFC3339, d.AvailableTo)
	if err != nil {
		return d.Status
	}
	if now.After(to) {
		return StatusExpired
	}
	return StatusActive
}
