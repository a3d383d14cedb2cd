// Package figure assembles the complete splice figure.
//
// [Plot] lays a fixed three-column grid over a fresh canvas (see
// [DefaultConfig]) and fills it in a fixed order:
//
//  1. the genome annotation at (0,0), the transcript schematic at (0,1) and
//     the gene labels at (1,1);
//  2. dashed donor lines over rows 0-2 and dashed acceptor lines over rows
//     0-6 of column 0;
//  3. donor coverage bars at (0,3), one detail lane per donor at (0,5) and a
//     connector per lane in the spacer at (0,4);
//  4. the same for acceptors at (0,7), (0,9) and (0,8), unless disabled with
//     [WithAcceptorLanes];
//  5. the legend at (2,0);
//  6. promotion of the coverage and lane panels above the dashed overlays.
//
// Panels missing from a custom grid are skipped and listed in
// [Figure.Skipped]. A partial figure is not an error.
//
// Each call owns its canvas, grid and lane allocators; concurrent calls do
// not share state.
package figure
