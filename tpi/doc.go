/*
Package tpi implements the Transfer Pain Index edge cost: a pure function from
(edge, traveler profile) to a cost that interior path search can minimize.

The cost is

	duration*0.5 + resistance*multiplier

where multiplier starts at 1 and is shaped by the profile and the edge tags.
Constraints are applied in severity order:

 1. wheelchair on an inaccessible edge is infeasible (+Inf)
 2. stroller on a stroller-inaccessible edge costs StrollerBlock (1000)
 3. stroller on an up-only escalator costs EscalatorUpOnlyBlock (500)
 4. luggage scales stairs x5, escalators x0.5, elevators x0.2
 5. crowding x1.5, narrow passages x1.2, clear signage x0.9,
    modern floors x0.8 (luggage only)

Wheelchair users get multiplier 0.1 on elevators before the luggage and
environment factors are applied.

Infeasible edges are reported as math.Inf(1), never as errors. Use Infeasible
to test for them.
*/
package tpi
