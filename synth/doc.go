/*
Package synth re-ranks candidate routes by how hard their station transfers
are for a given traveler.

For each route the synthesizer finds train → transfer → train windows,
resolves the transfer to a station, loads that station's interior graph once
per call and adds the station's transfer pain to the route duration:

	score = duration (minutes) + sum of transfer pain

Routes come back sorted by score with localized insights attached. Inputs are
never modified.

	s := synth.New(topology.Fixtures(), synth.Options{})
	ranked, err := s.Synthesize(ctx, routes, profile.New("LUGGAGE"), false, "ja")

Stations without a graph, unresolvable transfers and provider failures all
degrade to zero pain; they never fail the call. Only cancellation of ctx is
returned as an error.
*/
package synth
