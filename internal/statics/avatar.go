package statics

// defaultAvatarBase64 is a 1x1 transparent PNG, standing in for the
// source's default_avatar_base64() (original_source/html.c), which
// ships a real placeholder avatar baked into the binary. Served for
// both /susie.png and /favicon.ico (spec.md §6 table) until an operator
// supplies real instance assets.
const defaultAvatarBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNk+A8AAQUBAScY42YAAAAASUVORK5CYII="
