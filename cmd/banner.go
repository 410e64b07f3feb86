package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/pb33f/glam/tui"
)

var glamASCII = []string{
	" @@@@@@@  @@@        @@@@@@   @@@@@@@@@@ ",
	"@@@@@@@@  @@@       @@@@@@@@  @@@@@@@@@@@",
	"!@@       @@!       @@!  @@@  @@! @@! @@!",
	"!@!       !@!       !@!  @!@  !@! !@! !@!",
	"!@! @!@!@ @!!       @!@!@!@!  @!! !!@ @!@",
	"!!! !!@!! !!!       !!!@!!!!  !@!   ! !@!",
	":!!   !!: !!:       !!:  !!!  !!:     !!:",
	":!:   !:: :!:       :!:  !:!  :!:     :!:",
	" ::: ::::  :: ::::  ::   :::  :::     :: ",
	" :: :: :  : :: : :   :   : :   :      :  ",
}

// RenderBanner returns the banner with a pink to blue fade, one colour per line
func RenderBanner() string {
	colors := []string{"201", "201", "200", "199", "171", "135", "99", "63", "39", "45"}

	var result strings.Builder
	for i, line := range glamASCII {
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors[i%len(colors)])).
			Bold(true)
		result.WriteString(style.Render(line))
		result.WriteString("\n")
	}

	subtitleStyle := lipgloss.NewStyle().
		Foreground(tui.RGBBlue).
		Italic(true)

	containerStyle := lipgloss.NewStyle().
		Align(lipgloss.Left).
		MarginBottom(1)

	return containerStyle.Render(result.String() + subtitleStyle.Render("a terminal browser for makeup catalogs"))
}
