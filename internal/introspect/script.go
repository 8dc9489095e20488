package introspect

import "github.com/lithammer/dedent"

// identityScript is executed on the device over raw REPL; it prints a
// single brace-delimited record mpflash parses as the device's
// identity. Indented as a literal here for readability and flattened
// with dedent before it is ever written to the wire.
var identityScript = dedent.Dedent(`
	import sys, os, json
	info = {
	    'family': sys.implementation[0],
	    'version': '', 'build': '', 'ver': '',
	    'port': 'stm32' if sys.platform.startswith('pyb') else sys.platform,
	    'board': 'GENERIC', 'board_id': '', 'variant': '',
	    'cpu': '', 'mpy': '', 'arch': '', 'description': '',
	}
	try:
	    v = sys.implementation.version
	    info['version'] = '.'.join(str(n) for n in v[:3])
	except Exception:
	    pass
	try:
	    machine = sys.implementation._machine if hasattr(sys.implementation, '_machine') else os.uname().machine
	    info['board'] = machine.strip()
	    info['description'] = machine.strip()
	    build = getattr(sys.implementation, '_build', '')
	    if build:
	        info['board'] = build.split('-')[0]
	        info['variant'] = build.split('-')[1] if '-' in build else ''
	    info['board_id'] = build
	    info['cpu'] = machine.split('with')[-1].strip() if 'with' in machine else ''
	    info['mpy'] = getattr(sys.implementation, '_mpy', getattr(sys.implementation, 'mpy', ''))
	except Exception:
	    pass
	try:
	    info['build'] = sys.version.split('-')[1].split(' ')[0] if '-' in sys.version else ''
	except Exception:
	    pass
	if info['mpy']:
	    try:
	        sys_mpy = int(info['mpy'])
	        arch_table = [None, 'x86', 'x64', 'armv6', 'armv6m', 'armv7m', 'armv7em',
	                      'armv7emsp', 'armv7emdp', 'xtensa', 'xtensawin', 'hazard3riscv']
	        arch = arch_table[sys_mpy >> 10]
	        if arch:
	            info['arch'] = arch
	        info['mpy'] = 'v%d.%d' % (sys_mpy & 0xFF, sys_mpy >> 8 & 3)
	    except Exception:
	        pass
	info['ver'] = ('v' + info['version'] + '-' + info['build']) if info['build'] else ('v' + info['version'])
	print('` + identityMarker + `' + json.dumps(info))
`)

const identityMarker = "___mpflash_identity___"
