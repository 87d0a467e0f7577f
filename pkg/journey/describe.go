package journey

import (
	"fmt"
	"math"
	"strings"
)

const missingTime = "−−:−−"

// Describe renders a flattened block sequence as plain text, one line per block. Hidden
// locations and absent connectives are skipped.
func Describe(blocks []Block) string {
	var builder strings.Builder

	for _, block := range blocks {
		line := describeBlock(block)
		if line == "" {
			continue
		}
		builder.WriteString(line)
		builder.WriteString("\n")
	}

	return builder.String()
}

func describeBlock(block Block) string {
	switch b := block.(type) {
	case *LegBlock:
		lines := []string{fmt.Sprintf("%s %s%s  %s%s",
			formatStatus(b.DepartureData.Time.Departure),
			b.DepartureData.Location.Name,
			formatPlatform(b.DepartureData.PlatformData),
			b.Line.Name,
			formatDirection(b.Direction),
		)}
		if b.DepartureData.Attribute == AttributeCancelled || b.ArrivalData.Attribute == AttributeCancelled {
			lines = append(lines, "      cancelled")
		}
		lines = append(lines, fmt.Sprintf("%s %s%s",
			formatStatus(b.ArrivalData.Time.Arrival),
			b.ArrivalData.Location.Name,
			formatPlatform(b.ArrivalData.PlatformData),
		))
		return strings.Join(lines, "\n")
	case *TransferBlock:
		kind := "transfer"
		if b.IsStopover {
			kind = "stay on board"
		}
		return fmt.Sprintf("      %s at %s (%s)", kind, b.TransitData.Location.Name, formatMinutes(b.TransferTime))
	case *WalkBlock:
		walk := fmt.Sprintf("      walk to %s", b.DestinationLocation.Name)
		if b.Distance > 0 {
			walk += fmt.Sprintf(", %d m", b.Distance)
		}
		return walk + fmt.Sprintf(" (%s)", formatMinutes(b.TransferTime))
	case *LocationBlock:
		if b.Hidden {
			return ""
		}
		status := b.Time.Departure
		if status == nil {
			status = b.Time.Arrival
		}
		return fmt.Sprintf("%s %s", formatStatus(status), b.Location.Name)
	case *ErrorBlock:
		return "      no journey found"
	case *UnselectedBlock:
		return "      no journey selected"
	}

	return ""
}

func formatStatus(status *TimeStatus) string {
	if status == nil {
		return missingTime
	}

	formatted := status.Time.Format("15:04")
	if status.Delay != nil && *status.Delay != 0 {
		formatted += fmt.Sprintf(" %+d", int(math.Round(*status.Delay)))
	}

	return formatted
}

func formatPlatform(platform *PlatformData) string {
	if platform == nil || platform.Platform == "" {
		return ""
	}

	if platform.PlatformChanged {
		return fmt.Sprintf(" (platform %s, changed)", platform.Platform)
	}

	return fmt.Sprintf(" (platform %s)", platform.Platform)
}

func formatDirection(direction string) string {
	if direction == "" {
		return ""
	}

	return " → " + direction
}

func formatMinutes(minutes *float64) string {
	if minutes == nil {
		return "? min"
	}

	return fmt.Sprintf("%d min", int(math.Round(*minutes)))
}
